package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAcceptJobCommandIsNotConstructed = errors.New(
		"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
	)
)

// AcceptJobCommand represents a worker's request to take a pending job.
// Carries the identifier of the connection issuing the request so the
// resulting tracking session can be cleaned up on disconnect.
//
// Example:
//
//	cmd, err := NewAcceptJobCommand(jobID, workerID, conn.ID())
//	if err != nil {
//	    return fmt.Errorf("invalid accept request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type AcceptJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	workerID kernel.UUID
	connID   string

	guard guard.ConstructorGuard
}

// NewAcceptJobCommand creates a command for a worker to accept a job.
// Validates that both identifiers are valid UUIDs and the connection
// identifier is non-empty.
func NewAcceptJobCommand(jobID kernel.UUID, workerID kernel.UUID, connID string) (AcceptJobCommand, error) {
	command := AcceptJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setWorkerID(workerID),
		command.setConnID(connID),
	); err != nil {
		return AcceptJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptJobCommandIsNotConstructed if validation fails.
func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}

// JobID returns the job identifier from the command.
func (c AcceptJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// WorkerID returns the accepting worker's identifier from the command.
func (c AcceptJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// ConnID returns the identifier of the connection issuing the request.
func (c AcceptJobCommand) ConnID() string {
	return c.connID
}

func (c *AcceptJobCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobID = id
	return nil
}

func (c *AcceptJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

func (c *AcceptJobCommand) setConnID(connID string) error {
	if connID == "" {
		return errs.NewValueIsRequiredError("connID")
	}

	c.connID = connID
	return nil
}
