package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker aggregates,
// including the presence upkeep driven by heartbeats and go-online/go-offline.
type WorkerRepository interface {
	// Add persists a new worker aggregate to storage.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such worker exists.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// UpdatePresence sets the worker's active flag and last-active timestamp.
	// Returns errs.ErrObjectNotFound if no such worker exists.
	UpdatePresence(ctx context.Context, id kernel.UUID, isActive bool, lastActiveAt time.Time) error

	// DeactivateStale marks active workers whose last-active timestamp is
	// older than cutoff as inactive. Returns the number of workers affected.
	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
}
