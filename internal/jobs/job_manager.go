package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionReaperJob  *SessionReaperJob
	presenceExpiryJob *PresenceExpiryJob
}

// Schedules carries the cron expressions and timeouts for the background
// sweeps, taken from configuration.
type Schedules struct {
	SessionReaperSchedule  string
	SessionIdleTimeout     time.Duration
	PresenceExpirySchedule string
	PresenceTTL            time.Duration
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reaper SessionReaper,
	workerRepo ports.WorkerRepository,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionReaperJob:  NewSessionReaperJob(reaper, schedules.SessionIdleTimeout, schedules.SessionReaperSchedule, logger),
		presenceExpiryJob: NewPresenceExpiryJob(workerRepo, schedules.PresenceTTL, schedules.PresenceExpirySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start session reaper job: %w", err)
	}

	if err := jm.presenceExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionReaperJob.Stop()
		return fmt.Errorf("failed to start presence expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.presenceExpiryJob.Stop()
	jm.sessionReaperJob.Stop()
}
