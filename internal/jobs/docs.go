// Package jobs provides scheduled background tasks for the dispatch
// coordination core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the system needs even when no feed
// events arrive.
//
// # Available Jobs
//
// 1. BufferReleaseJob - Runs every second to release elapsed buffer holds and
// assign released orders to delivery groups
// 2. GroupTimeoutJob - Runs every 5 seconds to dispatch waiting groups older
// than the configured group timeout
// 3. OrderStatsJob - Runs every 10 seconds to poll the active order count
// 4. PresenceRefreshJob - Runs every 15 seconds to reconcile the presence
// tracker against the shared heartbeat rows
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseHandler, assignHandler,
//		timeoutHandler, tracker, counter, metrics, groupTimeout, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and keep their schedule; a broken tick never takes the
// scheduler down. Failed job starts stop any already running jobs.
package jobs
