package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionReaper destroys tracking sessions with no location update since
// cutoff and notifies the affected parties. Implemented by the ws gateway.
type SessionReaper interface {
	ReapIdleSessions(cutoff time.Time) int
}

// SessionReaperJob periodically sweeps idle tracking sessions so that a
// worker who silently stopped reporting does not leave the user watching a
// frozen map forever.
type SessionReaperJob struct {
	reaper      SessionReaper
	idleTimeout time.Duration
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewSessionReaperJob creates the idle session sweep. Sessions without an
// update for idleTimeout are destroyed on each run.
func NewSessionReaperJob(reaper SessionReaper, idleTimeout time.Duration, schedule string, logger *slog.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		reaper:      reaper,
		idleTimeout: idleTimeout,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "session_reaper_job"),
	}
}

// Start begins the periodic sweep.
func (j *SessionReaperJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		cutoff := time.Now().UTC().Add(-j.idleTimeout)
		if reaped := j.reaper.ReapIdleSessions(cutoff); reaped > 0 {
			j.logger.InfoContext(context.Background(), "Reaped idle tracking sessions", "count", reaped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session reaper job started",
		"schedule", j.schedule, "idle_timeout", j.idleTimeout.String())
	return nil
}

// Stop stops the sweep.
func (j *SessionReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session reaper job stopped")
}
