package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGoOfflineCommandIsNotConstructed = errors.New(
		"GoOfflineCommand must be created via NewGoOfflineCommand constructor",
	)
)

// GoOfflineCommand represents a worker withdrawing availability for new jobs.
type GoOfflineCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGoOfflineCommand creates a command for a worker to go offline.
func NewGoOfflineCommand(workerID kernel.UUID) (GoOfflineCommand, error) {
	command := GoOfflineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setWorkerID(workerID); err != nil {
		return GoOfflineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c GoOfflineCommand) Validate() error {
	return c.guard.Validate(ErrGoOfflineCommandIsNotConstructed)
}

// WorkerID returns the worker identifier from the command.
func (c GoOfflineCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *GoOfflineCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}
