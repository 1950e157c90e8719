package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateLocationCommandIsNotConstructed = errors.New(
		"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
	)
)

// UpdateLocationCommand represents a worker's live position report for a
// tracked job.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID
	point    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command carrying a worker's position for a job.
func NewUpdateLocationCommand(jobID kernel.UUID, workerID kernel.UUID, point kernel.GeoPoint) (UpdateLocationCommand, error) {
	command := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setWorkerID(workerID),
		command.setPoint(point),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// JobID returns the job identifier from the command.
func (c UpdateLocationCommand) JobID() kernel.UUID {
	return c.jobID
}

// WorkerID returns the reporting worker's identifier from the command.
func (c UpdateLocationCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Point returns the reported position.
func (c UpdateLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateLocationCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *UpdateLocationCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

func (c *UpdateLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.point = point
	return nil
}
