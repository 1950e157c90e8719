package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobNotFoundOrUnauthorized is returned when the job is absent or the
	// caller is not its assigned worker. The two cases are deliberately not
	// distinguished so callers cannot probe for job existence.
	ErrJobNotFoundOrUnauthorized = errors.New("job not found or unauthorized")

	// ErrJobNotConfirmed is returned when starting a job that is not confirmed.
	ErrJobNotConfirmed = errors.New("job must be confirmed before starting")
)

// StartJobCommandHandler moves a confirmed job to in-progress after verifying
// the caller owns the assignment.
type StartJobCommandHandler struct {
	jobRepo ports.JobRepository
}

// StartJobResult carries the reloaded job for the outbound started events.
type StartJobResult struct {
	Job *job.Job
}

// NewStartJobCommandHandler creates a handler for starting jobs.
func NewStartJobCommandHandler(jobRepo ports.JobRepository) StartJobCommandHandler {
	return StartJobCommandHandler{
		jobRepo: jobRepo,
	}
}

// Handle processes the start command.
// The ownership check and status precondition run against the persistent
// store; the transition itself is conditional on status=confirmed, so a
// concurrent transition surfaces as ErrJobNotConfirmed rather than a
// silent overwrite.
func (h StartJobCommandHandler) Handle(ctx context.Context, cmd StartJobCommand) (StartJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return StartJobResult{}, err
	}

	aggregate, err := h.jobRepo.Get(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return StartJobResult{}, ErrJobNotFoundOrUnauthorized
	}
	if err != nil {
		return StartJobResult{}, err
	}

	if !aggregate.IsOwnedBy(cmd.WorkerID()) {
		return StartJobResult{}, ErrJobNotFoundOrUnauthorized
	}

	if aggregate.Status() != job.Confirmed {
		return StartJobResult{}, ErrJobNotConfirmed
	}

	updated, err := h.jobRepo.UpdateStatusIf(ctx, cmd.JobID(), job.Confirmed, job.InProgress, nil)
	if errors.Is(err, errs.ErrStatusConflict) {
		return StartJobResult{}, ErrJobNotConfirmed
	}
	if err != nil {
		return StartJobResult{}, err
	}

	return StartJobResult{Job: updated}, nil
}
