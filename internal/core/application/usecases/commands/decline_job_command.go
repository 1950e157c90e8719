package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrDeclineJobCommandIsNotConstructed = errors.New(
		"DeclineJobCommand must be created via NewDeclineJobCommand constructor",
	)
)

// DeclineJobCommand represents a worker turning down a job offer.
// Declining never mutates job status; the job stays pending for other workers.
type DeclineJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewDeclineJobCommand creates a command for a worker to decline a job.
// The reason is optional free-form text kept for analytics.
func NewDeclineJobCommand(jobID kernel.UUID, workerID kernel.UUID, reason string) (DeclineJobCommand, error) {
	command := DeclineJobCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setWorkerID(workerID),
	); err != nil {
		return DeclineJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineJobCommand) Validate() error {
	return c.guard.Validate(ErrDeclineJobCommandIsNotConstructed)
}

// JobID returns the job identifier from the command.
func (c DeclineJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// WorkerID returns the declining worker's identifier from the command.
func (c DeclineJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Reason returns the optional decline reason.
func (c DeclineJobCommand) Reason() string {
	return c.reason
}

func (c *DeclineJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *DeclineJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}
