package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrStartJobCommandIsNotConstructed = errors.New(
		"StartJobCommand must be created via NewStartJobCommand constructor",
	)
)

// StartJobCommand represents the assigned worker's request to begin work on a
// confirmed job.
type StartJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartJobCommand creates a command for the assigned worker to start a job.
func NewStartJobCommand(jobID kernel.UUID, workerID kernel.UUID) (StartJobCommand, error) {
	command := StartJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setWorkerID(workerID),
	); err != nil {
		return StartJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartJobCommand) Validate() error {
	return c.guard.Validate(ErrStartJobCommandIsNotConstructed)
}

// JobID returns the job identifier from the command.
func (c StartJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// WorkerID returns the worker identifier from the command.
func (c StartJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *StartJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *StartJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}
