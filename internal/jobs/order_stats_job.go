package jobs

import (
	"context"
	"log/slog"

	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/observability"

	"github.com/robfig/cron/v3"
)

// OrderStatsJob polls the active order count every 10 seconds and publishes
// it to the metrics gauge. The same count feeds the dynamic buffer
// calculator, so the gauge shows exactly what the timer decisions see.
type OrderStatsJob struct {
	counter commands.ActiveOrderCounter
	metrics *observability.Collector
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderStatsJob creates a new job for order volume statistics.
func NewOrderStatsJob(
	counter commands.ActiveOrderCounter,
	metrics *observability.Collector,
	logger *slog.Logger,
) *OrderStatsJob {
	return &OrderStatsJob{
		counter: counter,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_stats_job"),
	}
}

// Start begins the order stats job to run every 10 seconds.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		count, err := j.counter.ActiveOrderCount(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order stats poll failed", "error", err)
			return
		}

		j.metrics.SetActiveOrders(count)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every 10 seconds)")
	return nil
}

// Stop stops the order stats job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
