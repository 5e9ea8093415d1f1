package jobs

import (
	"context"
	"log/slog"

	"expeditor/internal/adapters/out/presence"
	"expeditor/internal/observability"

	"github.com/robfig/cron/v3"
)

// PresenceRefreshJob reconciles the in-memory presence tracker against the
// shared heartbeat rows every 15 seconds, covering feed events missed while
// disconnected, and refreshes the per-sector operator gauges.
type PresenceRefreshJob struct {
	tracker *presence.Tracker
	metrics *observability.Collector
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPresenceRefreshJob creates a new job for presence reconciliation.
func NewPresenceRefreshJob(
	tracker *presence.Tracker,
	metrics *observability.Collector,
	logger *slog.Logger,
) *PresenceRefreshJob {
	return &PresenceRefreshJob{
		tracker: tracker,
		metrics: metrics,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "presence_refresh_job"),
	}
}

// Start begins the presence refresh job to run every 15 seconds.
func (j *PresenceRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()

		if err := j.tracker.Reconcile(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Presence refresh failed", "error", err)
			return
		}

		counts := make(map[string]int)
		for sectorID, count := range j.tracker.SectorCounts() {
			counts[sectorID.String()] = count
		}
		j.metrics.SetOnlineOperators(counts)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence refresh job started (running every 15 seconds)")
	return nil
}

// Stop stops the presence refresh job.
func (j *PresenceRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Presence refresh job stopped")
}
