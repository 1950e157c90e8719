package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for the latest known
// location per worker. There is at most one row per worker; updates overwrite.
type LocationRepository interface {
	// Upsert stores the worker's latest position, inserting or overwriting
	// the single row keyed by worker identifier.
	Upsert(ctx context.Context, workerID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time) error

	// GetLatest retrieves the worker's latest known position.
	// Returns errs.ErrObjectNotFound if the worker never reported one.
	GetLatest(ctx context.Context, workerID kernel.UUID) (location.Sample, error)
}
