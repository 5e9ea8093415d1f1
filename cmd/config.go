package cmd

// Config carries the process-level settings read from the environment.
// Operator-tunable dispatch parameters live in the YAML settings file
// instead; see DispatchConfig.
type Config struct {
	HTTPPort     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSslMode    string
	FeedURL      string
	PrinterName  string
	SettingsPath string
}
