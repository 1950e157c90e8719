package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// GoLiveCommandHandler marks a worker available for new jobs. Joining the
// broadcast room is the gateway's concern; this handler only persists presence.
type GoLiveCommandHandler struct {
	workerRepo ports.WorkerRepository
}

// NewGoLiveCommandHandler creates a handler for workers going live.
func NewGoLiveCommandHandler(workerRepo ports.WorkerRepository) GoLiveCommandHandler {
	return GoLiveCommandHandler{
		workerRepo: workerRepo,
	}
}

// Handle processes the go-live command.
func (h GoLiveCommandHandler) Handle(ctx context.Context, cmd GoLiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.workerRepo.UpdatePresence(ctx, cmd.WorkerID(), true, time.Now().UTC())
}
