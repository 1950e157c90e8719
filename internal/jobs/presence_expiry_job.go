package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PresenceExpiryJob periodically marks workers as inactive when their last
// heartbeat is older than the presence TTL. The sweep only ages the active
// flag; a later heartbeat brings the worker straight back.
type PresenceExpiryJob struct {
	workerRepo  ports.WorkerRepository
	presenceTTL time.Duration
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewPresenceExpiryJob creates the presence expiry sweep.
func NewPresenceExpiryJob(workerRepo ports.WorkerRepository, presenceTTL time.Duration, schedule string, logger *slog.Logger) *PresenceExpiryJob {
	return &PresenceExpiryJob{
		workerRepo:  workerRepo,
		presenceTTL: presenceTTL,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "presence_expiry_job"),
	}
}

// Start begins the periodic sweep.
func (j *PresenceExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.presenceTTL)

		affected, err := j.workerRepo.DeactivateStale(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Presence expiry job failed", "error", err)
			return
		}
		if affected > 0 {
			j.logger.InfoContext(ctx, "Deactivated stale workers", "count", affected)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence expiry job started",
		"schedule", j.schedule, "presence_ttl", j.presenceTTL.String())
	return nil
}

// Stop stops the sweep.
func (j *PresenceExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Presence expiry job stopped")
}
