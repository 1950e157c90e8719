package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// GoOfflineCommandHandler marks a worker unavailable for new jobs, the inverse
// of GoLiveCommandHandler.
type GoOfflineCommandHandler struct {
	workerRepo ports.WorkerRepository
}

// NewGoOfflineCommandHandler creates a handler for workers going offline.
func NewGoOfflineCommandHandler(workerRepo ports.WorkerRepository) GoOfflineCommandHandler {
	return GoOfflineCommandHandler{
		workerRepo: workerRepo,
	}
}

// Handle processes the go-offline command.
func (h GoOfflineCommandHandler) Handle(ctx context.Context, cmd GoOfflineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.workerRepo.UpdatePresence(ctx, cmd.WorkerID(), false, time.Now().UTC())
}
