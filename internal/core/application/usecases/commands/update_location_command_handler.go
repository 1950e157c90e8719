package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
	"dispatch/internal/core/ports"
)

var (
	// ErrTrackingUnauthorized is returned when the caller does not hold the
	// tracking session for the job. No state is touched in that case.
	ErrTrackingUnauthorized = errors.New("not authorized to update location for this job")
)

// UpdateLocationCommandHandler relays a worker's position for a tracked job:
// it authorizes against the session store, upserts the latest known location,
// refreshes the session and appends to the in-memory trail.
//
// Authorization comes first: a caller without the job's session never reaches
// the persistent store.
type UpdateLocationCommandHandler struct {
	locationRepo ports.LocationRepository
	sessions     *tracking.Store
}

// UpdateLocationResult identifies the user room to relay the update to and the
// timestamp recorded for the sample.
type UpdateLocationResult struct {
	UserID     kernel.UUID
	RecordedAt time.Time
}

// NewUpdateLocationCommandHandler creates a handler for live location updates.
func NewUpdateLocationCommandHandler(
	locationRepo ports.LocationRepository,
	sessions *tracking.Store,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		locationRepo: locationRepo,
		sessions:     sessions,
	}
}

// Handle processes the location update command.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (UpdateLocationResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateLocationResult{}, err
	}

	session, ok := h.sessions.Get(cmd.JobID())
	if !ok || !session.WorkerID.IsEqual(cmd.WorkerID()) {
		return UpdateLocationResult{}, ErrTrackingUnauthorized
	}

	now := time.Now().UTC()

	if err := h.locationRepo.Upsert(ctx, cmd.WorkerID(), cmd.Point(), now); err != nil {
		return UpdateLocationResult{}, err
	}

	h.sessions.Touch(cmd.JobID(), now)

	sample, err := location.NewSample(cmd.WorkerID(), cmd.Point(), now)
	if err != nil {
		return UpdateLocationResult{}, err
	}
	h.sessions.AppendSample(cmd.JobID(), sample)

	return UpdateLocationResult{UserID: session.UserID, RecordedAt: now}, nil
}
