// Package jobs provides scheduled background tasks for the dispatch coordinator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic hygiene the live-tracking layer needs.
//
// # Available Jobs
//
// 1. SessionReaperJob - Destroys tracking sessions that stopped receiving location updates
// 2. PresenceExpiryJob - Marks workers inactive when their last heartbeat is older than the presence TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(gateway, workerRepository, schedules, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both schedules come from configuration as six-field cron expressions with a
// seconds column, e.g. "*/30 * * * * *" for every thirty seconds. Timeouts
// (session idle, presence TTL) are configured alongside.
//
// # Error Handling
//
// - The reaper reports how many sessions it destroyed; affected users are notified through their rooms
// - The presence sweep logs repository errors and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
