package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrHeartbeatCommandIsNotConstructed = errors.New(
		"HeartbeatCommand must be created via NewHeartbeatCommand constructor",
	)
)

// HeartbeatCommand represents a worker's periodic liveness signal, optionally
// carrying the worker's current position. Heartbeats are independent of any
// job; this is how idle workers keep their presence and position fresh for
// the matching subsystem.
type HeartbeatCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	point    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewHeartbeatCommand creates a heartbeat command.
// The position is optional; pass nil when the client sent no coordinates.
func NewHeartbeatCommand(workerID kernel.UUID, point *kernel.GeoPoint) (HeartbeatCommand, error) {
	command := HeartbeatCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWorkerID(workerID),
		command.setPoint(point),
	); err != nil {
		return HeartbeatCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrHeartbeatCommandIsNotConstructed)
}

// WorkerID returns the heartbeating worker's identifier.
func (c HeartbeatCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Point returns the reported position, or nil when none was sent.
func (c HeartbeatCommand) Point() *kernel.GeoPoint {
	return c.point
}

func (c *HeartbeatCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

func (c *HeartbeatCommand) setPoint(point *kernel.GeoPoint) error {
	if point == nil {
		return nil
	}
	if err := point.Validate(); err != nil {
		return err
	}

	p := *point
	c.point = &p
	return nil
}
