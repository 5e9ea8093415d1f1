package jobs

import (
	"context"
	"log/slog"
	"time"

	"expeditor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// GroupTimeoutJob dispatches waiting groups that have exceeded the configured
// group timeout. Runs every 5 seconds; the administrative dispatch endpoint
// covers the manual half of the trigger.
type GroupTimeoutJob struct {
	handler commands.DispatchDueGroupsCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewGroupTimeoutJob creates a new job for timeout-driven group dispatch.
func NewGroupTimeoutJob(
	handler commands.DispatchDueGroupsCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *GroupTimeoutJob {
	return &GroupTimeoutJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "group_timeout_job"),
	}
}

// Start begins the group timeout job to run every 5 seconds.
func (j *GroupTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchDueGroupsCommand(j.timeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Group timeout job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Group timeout job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Group timeout job started (running every 5 seconds)")
	return nil
}

// Stop stops the group timeout job.
func (j *GroupTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Group timeout job stopped")
}
