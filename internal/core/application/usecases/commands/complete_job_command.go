package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteJobCommandIsNotConstructed = errors.New(
		"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
	)
)

// CompleteJobCommand represents the assigned worker's request to finish an
// in-progress job.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a command for the assigned worker to complete a job.
func NewCompleteJobCommand(jobID kernel.UUID, workerID kernel.UUID) (CompleteJobCommand, error) {
	command := CompleteJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setWorkerID(workerID),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// JobID returns the job identifier from the command.
func (c CompleteJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// WorkerID returns the worker identifier from the command.
func (c CompleteJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *CompleteJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *CompleteJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}
