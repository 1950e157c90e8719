package commands

import (
	"context"
	"log/slog"
)

// DeclineJobCommandHandler acknowledges a worker's decline. The job is left
// pending for other workers; whether the declining worker is excluded from
// future rebroadcasts is the matching subsystem's call. The decline is logged
// for analytics.
type DeclineJobCommandHandler struct {
	logger *slog.Logger
}

// NewDeclineJobCommandHandler creates a handler for job declines.
func NewDeclineJobCommandHandler(logger *slog.Logger) DeclineJobCommandHandler {
	return DeclineJobCommandHandler{
		logger: logger.With("component", "decline-job"),
	}
}

// Handle processes the decline command.
func (h DeclineJobCommandHandler) Handle(_ context.Context, cmd DeclineJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.logger.Info("job declined",
		"job_id", cmd.JobID().String(),
		"worker_id", cmd.WorkerID().String(),
		"reason", cmd.Reason())

	return nil
}
