package cmd

import (
	"log/slog"

	httpin "expeditor/internal/adapters/in/http"
	"expeditor/internal/adapters/out/feed"
	"expeditor/internal/adapters/out/postgres"
	"expeditor/internal/adapters/out/postgres/presencerepo"
	"expeditor/internal/adapters/out/presence"
	"expeditor/internal/adapters/out/printing"
	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/core/application/usecases/queries"
	"expeditor/internal/jobs"
	"expeditor/internal/observability"
	"expeditor/internal/workers"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, handlers, jobs and workers together.
type CompositionRoot struct {
	config     Config
	settings   *DispatchConfig
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	eventFeed  *feed.WebsocketFeed
	tracker    *presence.Tracker
	metrics    *observability.Collector
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the loaded configuration.
func NewCompositionRoot(
	config Config,
	settings *DispatchConfig,
	gormDB *gorm.DB,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	return CompositionRoot{
		config:     config,
		settings:   settings,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		eventFeed:  feed.NewWebsocketFeed(config.FeedURL, logger),
		tracker:    presence.NewTracker(presencerepo.NewGormPresenceRepository(gormDB), logger),
		metrics:    observability.NewCollector(),
		logger:     logger,
	}
}

// EventFeed returns the shared realtime feed client.
func (c *CompositionRoot) EventFeed() *feed.WebsocketFeed {
	return c.eventFeed
}

// Tracker returns the presence tracker.
func (c *CompositionRoot) Tracker() *presence.Tracker {
	return c.tracker
}

// Metrics returns the metrics collector.
func (c *CompositionRoot) Metrics() *observability.Collector {
	return c.metrics
}

func (c *CompositionRoot) CreateClaimItemCommandHandler() commands.ClaimItemCommandHandler {
	var f commands.ItemUoWFactory = FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimItemCommandHandler(f, c.tracker)
}

func (c *CompositionRoot) CreateEnterOvenCommandHandler() commands.EnterOvenCommandHandler {
	var f commands.ItemUoWFactory = FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEnterOvenCommandHandler(f, c.settings)
}

func (c *CompositionRoot) CreateMarkItemReadyCommandHandler() commands.MarkItemReadyCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	counter := c.CreateGetActiveOrderCountQueryHandler()
	return commands.NewMarkItemReadyCommandHandler(f, c.settings, counter)
}

func (c *CompositionRoot) CreateReleaseBufferedOrdersCommandHandler() commands.ReleaseBufferedOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseBufferedOrdersCommandHandler(f, c.metrics)
}

func (c *CompositionRoot) CreateAssignOrdersToGroupsCommandHandler() commands.AssignOrdersToGroupsCommandHandler {
	var f commands.GroupUoWFactory = FuncGroupUoWFactory(func() commands.GroupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersToGroupsCommandHandler(f, c.settings, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateDispatchGroupCommandHandler() commands.DispatchGroupCommandHandler {
	var f commands.GroupUoWFactory = FuncGroupUoWFactory(func() commands.GroupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchGroupCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchDueGroupsCommandHandler() commands.DispatchDueGroupsCommandHandler {
	var f commands.GroupUoWFactory = FuncGroupUoWFactory(func() commands.GroupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchDueGroupsCommandHandler(f, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRequeuePrintJobCommandHandler() commands.RequeuePrintJobCommandHandler {
	var f commands.PrintJobUoWFactory = FuncPrintJobUoWFactory(func() commands.PrintJobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequeuePrintJobCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrderCountQueryHandler() queries.GetActiveOrderCountQueryHandler {
	return queries.NewGetActiveOrderCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSectorQueueQueryHandler() queries.GetSectorQueueQueryHandler {
	return queries.NewGetSectorQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingPrintJobsQueryHandler() queries.GetPendingPrintJobsQueryHandler {
	return queries.NewGetPendingPrintJobsQueryHandler(c.gormDB)
}

// CreatePrintWorker builds the print worker, or nil when this process has no
// printer configured.
func (c *CompositionRoot) CreatePrintWorker() *workers.PrintWorker {
	if c.config.PrinterName == "" {
		return nil
	}

	var f commands.PrintJobUoWFactory = FuncPrintJobUoWFactory(func() commands.PrintJobUoW {
		return c.uowFactory.Create()
	})

	printer := printing.NewLogPrinter(c.config.PrinterName, printing.NewTextFormatter(), c.logger)
	return workers.NewPrintWorker(f, printer, c.eventFeed, c.metrics, c.logger)
}

// CreateJobManager builds the scheduled job set.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleaseBufferedOrdersCommandHandler(),
		c.CreateAssignOrdersToGroupsCommandHandler(),
		c.CreateDispatchDueGroupsCommandHandler(),
		c.tracker,
		c.CreateGetActiveOrderCountQueryHandler(),
		c.metrics,
		c.settings.GroupTimeout(),
		c.logger,
	)
}

// CreateHTTPServer builds the REST API surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateClaimItemCommandHandler(),
		c.CreateEnterOvenCommandHandler(),
		c.CreateMarkItemReadyCommandHandler(),
		c.CreateDispatchGroupCommandHandler(),
		c.CreateRequeuePrintJobCommandHandler(),
		c.CreateGetSectorQueueQueryHandler(),
		c.CreateGetPendingPrintJobsQueryHandler(),
		c.tracker,
		c.metrics.Handler(),
	)
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncGroupUoWFactory func() commands.GroupUoW

func (f FuncGroupUoWFactory) Create() commands.GroupUoW {
	return f()
}

type FuncPrintJobUoWFactory func() commands.PrintJobUoW

func (f FuncPrintJobUoWFactory) Create() commands.PrintJobUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
