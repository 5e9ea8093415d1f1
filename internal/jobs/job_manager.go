package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"expeditor/internal/adapters/out/presence"
	"expeditor/internal/core/application/usecases/commands"
	"expeditor/internal/observability"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	bufferReleaseJob   *BufferReleaseJob
	groupTimeoutJob    *GroupTimeoutJob
	orderStatsJob      *OrderStatsJob
	presenceRefreshJob *PresenceRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseHandler commands.ReleaseBufferedOrdersCommandHandler,
	assignHandler commands.AssignOrdersToGroupsCommandHandler,
	timeoutHandler commands.DispatchDueGroupsCommandHandler,
	tracker *presence.Tracker,
	counter commands.ActiveOrderCounter,
	metrics *observability.Collector,
	groupTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		bufferReleaseJob:   NewBufferReleaseJob(releaseHandler, assignHandler, logger),
		groupTimeoutJob:    NewGroupTimeoutJob(timeoutHandler, groupTimeout, logger),
		orderStatsJob:      NewOrderStatsJob(counter, metrics, logger),
		presenceRefreshJob: NewPresenceRefreshJob(tracker, metrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	started := make([]interface{ Stop() }, 0, 4)

	for _, job := range []struct {
		name  string
		start func() error
		stop  interface{ Stop() }
	}{
		{"buffer release", jm.bufferReleaseJob.Start, jm.bufferReleaseJob},
		{"group timeout", jm.groupTimeoutJob.Start, jm.groupTimeoutJob},
		{"order stats", jm.orderStatsJob.Start, jm.orderStatsJob},
		{"presence refresh", jm.presenceRefreshJob.Start, jm.presenceRefreshJob},
	} {
		if err := job.start(); err != nil {
			// Stop already started jobs if this one fails
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.name, err)
		}
		started = append(started, job.stop)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.presenceRefreshJob.Stop()
	jm.orderStatsJob.Stop()
	jm.groupTimeoutJob.Stop()
	jm.bufferReleaseJob.Stop()
}
