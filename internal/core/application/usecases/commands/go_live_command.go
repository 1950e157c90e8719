package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGoLiveCommandIsNotConstructed = errors.New(
		"GoLiveCommand must be created via NewGoLiveCommand constructor",
	)
)

// GoLiveCommand represents a worker signaling availability for new jobs.
type GoLiveCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGoLiveCommand creates a command for a worker to go live.
func NewGoLiveCommand(workerID kernel.UUID) (GoLiveCommand, error) {
	command := GoLiveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setWorkerID(workerID); err != nil {
		return GoLiveCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c GoLiveCommand) Validate() error {
	return c.guard.Validate(ErrGoLiveCommandIsNotConstructed)
}

// WorkerID returns the worker identifier from the command.
func (c GoLiveCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *GoLiveCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}
