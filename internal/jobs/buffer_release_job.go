package jobs

import (
	"context"
	"log/slog"

	"expeditor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BufferReleaseJob manages the scheduled release of elapsed buffer holds.
// Runs every second: first releases orders whose hold expired, then assigns
// everything released (now or earlier) to delivery groups. Ordering matters;
// an order released on this tick should be groupable on this tick.
type BufferReleaseJob struct {
	releaseHandler commands.ReleaseBufferedOrdersCommandHandler
	assignHandler  commands.AssignOrdersToGroupsCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewBufferReleaseJob creates a new job for buffer release and grouping.
func NewBufferReleaseJob(
	releaseHandler commands.ReleaseBufferedOrdersCommandHandler,
	assignHandler commands.AssignOrdersToGroupsCommandHandler,
	logger *slog.Logger,
) *BufferReleaseJob {
	return &BufferReleaseJob{
		releaseHandler: releaseHandler,
		assignHandler:  assignHandler,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "buffer_release_job"),
	}
}

// Start begins the buffer release job to run every second.
func (j *BufferReleaseJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		releaseCmd := commands.NewReleaseBufferedOrdersCommand()
		if err := j.releaseHandler.Handle(ctx, releaseCmd); err != nil {
			j.logger.ErrorContext(ctx, "Buffer release job failed", "error", err)
			return
		}

		assignCmd := commands.NewAssignOrdersToGroupsCommand()
		if err := j.assignHandler.Handle(ctx, assignCmd); err != nil {
			j.logger.ErrorContext(ctx, "Group assignment failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Buffer release job started (running every second)")
	return nil
}

// Stop stops the buffer release job.
func (j *BufferReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Buffer release job stopped")
}
