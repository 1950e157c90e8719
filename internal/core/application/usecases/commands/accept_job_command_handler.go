package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobNotFound is returned when the requested job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobAlreadyAccepted is returned when another worker won the job.
	ErrJobAlreadyAccepted = errors.New("job already accepted by another worker")

	// ErrJobNoLongerAvailable is returned when the job left pending without
	// a worker assignment (cancelled or exhausted).
	ErrJobNoLongerAvailable = errors.New("job is no longer available")

	// ErrWorkerUnavailable is returned when the accepting worker is missing or inactive.
	ErrWorkerUnavailable = errors.New("worker not available or inactive")
)

// AcceptJobCommandHandler arbitrates the race between workers accepting the
// same pending job. The in-process precondition checks are advisory; the
// authoritative decision is the repository's conditional status update, so two
// racing workers can never both succeed.
//
// On success the handler registers a tracking session binding the job to the
// accepting worker's connection.
//
// Example:
//
//	handler := NewAcceptJobCommandHandler(jobRepo, workerRepo, sessions)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrJobAlreadyAccepted):
//	    // lost the race, expected and frequent
//	case errors.Is(err, ErrWorkerUnavailable):
//	    // worker went inactive
//	case err != nil:
//	    // downstream failure
//	}
type AcceptJobCommandHandler struct {
	jobRepo    ports.JobRepository
	workerRepo ports.WorkerRepository
	sessions   *tracking.Store
}

// AcceptJobResult carries the reloaded job and the accepting worker's profile
// for the outbound acceptance events.
type AcceptJobResult struct {
	Job    *job.Job
	Worker *worker.Worker
}

// NewAcceptJobCommandHandler creates a handler for job acceptance.
func NewAcceptJobCommandHandler(
	jobRepo ports.JobRepository,
	workerRepo ports.WorkerRepository,
	sessions *tracking.Store,
) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		jobRepo:    jobRepo,
		workerRepo: workerRepo,
		sessions:   sessions,
	}
}

// Handle processes the job acceptance command.
//
// Preconditions re-validated against the persistent store: the job exists and
// is pending with no worker assigned, the worker exists and is active. The
// transition itself is a conditional update on status=pending; on a lost race
// the job is reloaded to distinguish ErrJobAlreadyAccepted from
// ErrJobNoLongerAvailable.
func (h AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) (AcceptJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptJobResult{}, err
	}

	aggregate, err := h.jobRepo.Get(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AcceptJobResult{}, ErrJobNotFound
	}
	if err != nil {
		return AcceptJobResult{}, err
	}

	if aggregate.Status() != job.Pending {
		return AcceptJobResult{}, classifyUnavailable(aggregate)
	}

	workerAggregate, err := h.workerRepo.Get(ctx, cmd.WorkerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AcceptJobResult{}, ErrWorkerUnavailable
	}
	if err != nil {
		return AcceptJobResult{}, err
	}
	if !workerAggregate.IsActive() {
		return AcceptJobResult{}, ErrWorkerUnavailable
	}

	workerID := cmd.WorkerID()
	updated, err := h.jobRepo.UpdateStatusIf(ctx, cmd.JobID(), job.Pending, job.Confirmed, &workerID)
	if errors.Is(err, errs.ErrStatusConflict) {
		// Lost the race. Reload to report what actually happened.
		current, getErr := h.jobRepo.Get(ctx, cmd.JobID())
		if getErr != nil {
			return AcceptJobResult{}, ErrJobNoLongerAvailable
		}
		return AcceptJobResult{}, classifyUnavailable(current)
	}
	if err != nil {
		return AcceptJobResult{}, err
	}

	h.sessions.Put(tracking.Session{
		JobID:      updated.ID(),
		WorkerID:   cmd.WorkerID(),
		UserID:     updated.UserID(),
		ConnID:     cmd.ConnID(),
		LastUpdate: time.Now().UTC(),
	})

	return AcceptJobResult{Job: updated, Worker: workerAggregate}, nil
}

// classifyUnavailable distinguishes a job taken by another worker from a job
// that left pending without an assignment.
func classifyUnavailable(aggregate *job.Job) error {
	if aggregate.Worker() != nil {
		return ErrJobAlreadyAccepted
	}
	return ErrJobNoLongerAvailable
}
