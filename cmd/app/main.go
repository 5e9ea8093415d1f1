package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"expeditor/cmd"
	"expeditor/internal/adapters/out/postgres/grouprepo"
	"expeditor/internal/adapters/out/postgres/itemrepo"
	"expeditor/internal/adapters/out/postgres/orderrepo"
	"expeditor/internal/adapters/out/postgres/presencerepo"
	"expeditor/internal/adapters/out/postgres/printjobrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	settings, err := cmd.LoadDispatchConfig(configs.SettingsPath)
	if err != nil {
		log.Fatalf("Error loading dispatch settings: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, settings, gormDB, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	go func() {
		if runErr := app.Tracker().Run(ctx, app.EventFeed()); runErr != nil && ctx.Err() == nil {
			logger.Error("presence feed consumer stopped", "error", runErr)
		}
	}()

	if worker := app.CreatePrintWorker(); worker != nil {
		go func() {
			if runErr := worker.Run(ctx); runErr != nil && ctx.Err() == nil {
				logger.Error("print worker stopped", "error", runErr)
			}
		}()
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:     goDotEnvVariable("HTTP_PORT"),
		DBHost:       goDotEnvVariable("DB_HOST"),
		DBPort:       goDotEnvVariable("DB_PORT"),
		DBUser:       goDotEnvVariable("DB_USER"),
		DBPassword:   goDotEnvVariable("DB_PASSWORD"),
		DBName:       goDotEnvVariable("DB_NAME"),
		DBSslMode:    goDotEnvVariable("DB_SSLMODE"),
		FeedURL:      goDotEnvVariable("FEED_URL"),
		PrinterName:  goDotEnvVariable("PRINTER_NAME"),
		SettingsPath: goDotEnvVariable("SETTINGS_PATH"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&itemrepo.ItemDTO{},
		&orderrepo.OrderDTO{},
		&grouprepo.GroupDTO{},
		&printjobrepo.PrintJobDTO{},
		&presencerepo.PresenceDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
