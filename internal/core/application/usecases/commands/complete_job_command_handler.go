package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobNotInProgress is returned when completing a job that is not in progress.
	ErrJobNotInProgress = errors.New("job must be in progress before completing")
)

// CompleteJobCommandHandler marks an in-progress job as completed and destroys
// its tracking session, ending location relay for the job.
type CompleteJobCommandHandler struct {
	jobRepo  ports.JobRepository
	sessions *tracking.Store
}

// CompleteJobResult carries the reloaded job for the outbound completion events.
type CompleteJobResult struct {
	Job *job.Job
}

// NewCompleteJobCommandHandler creates a handler for completing jobs.
func NewCompleteJobCommandHandler(jobRepo ports.JobRepository, sessions *tracking.Store) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		jobRepo:  jobRepo,
		sessions: sessions,
	}
}

// Handle processes the completion command.
// Ownership and status preconditions mirror StartJobCommandHandler; on success
// the tracking session for the job is removed so a subsequent location update
// for the job is rejected as unauthorized.
func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) (CompleteJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteJobResult{}, err
	}

	aggregate, err := h.jobRepo.Get(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CompleteJobResult{}, ErrJobNotFoundOrUnauthorized
	}
	if err != nil {
		return CompleteJobResult{}, err
	}

	if !aggregate.IsOwnedBy(cmd.WorkerID()) {
		return CompleteJobResult{}, ErrJobNotFoundOrUnauthorized
	}

	if aggregate.Status() != job.InProgress {
		return CompleteJobResult{}, ErrJobNotInProgress
	}

	updated, err := h.jobRepo.UpdateStatusIf(ctx, cmd.JobID(), job.InProgress, job.Completed, nil)
	if errors.Is(err, errs.ErrStatusConflict) {
		return CompleteJobResult{}, ErrJobNotInProgress
	}
	if err != nil {
		return CompleteJobResult{}, err
	}

	h.sessions.Remove(updated.ID())

	return CompleteJobResult{Job: updated}, nil
}
