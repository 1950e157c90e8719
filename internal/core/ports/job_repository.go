package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
// The persistent store is the single source of truth for job status; every
// mutating operation re-validates against it before acting.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such job exists.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// UpdateStatusIf atomically moves the job from expected to next status,
	// optionally assigning a worker in the same statement. The update is
	// conditional on the stored status still being expected; when the
	// condition fails (a racing update won) it returns
	// errs.ErrStatusConflict and leaves the row untouched. This is the
	// check-and-set primitive that arbitrates racing accepts.
	//
	// Returns the reloaded aggregate on success.
	UpdateStatusIf(
		ctx context.Context,
		id kernel.UUID,
		expected job.Status,
		next job.Status,
		workerID *kernel.UUID,
	) (*job.Job, error)
}
