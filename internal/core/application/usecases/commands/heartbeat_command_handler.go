package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// HeartbeatCommandHandler refreshes a worker's presence and, when coordinates
// were sent, upserts the worker's latest known location. A heartbeating worker
// is considered active even without an explicit go-live.
type HeartbeatCommandHandler struct {
	workerRepo   ports.WorkerRepository
	locationRepo ports.LocationRepository
}

// NewHeartbeatCommandHandler creates a handler for worker heartbeats.
func NewHeartbeatCommandHandler(
	workerRepo ports.WorkerRepository,
	locationRepo ports.LocationRepository,
) HeartbeatCommandHandler {
	return HeartbeatCommandHandler{
		workerRepo:   workerRepo,
		locationRepo: locationRepo,
	}
}

// Handle processes the heartbeat command.
func (h HeartbeatCommandHandler) Handle(ctx context.Context, cmd HeartbeatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := h.workerRepo.UpdatePresence(ctx, cmd.WorkerID(), true, now); err != nil {
		return err
	}

	if point := cmd.Point(); point != nil {
		if err := h.locationRepo.Upsert(ctx, cmd.WorkerID(), *point, now); err != nil {
			return err
		}
	}

	return nil
}
