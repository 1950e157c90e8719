// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrJoinTrackingQueryIsNotConstructed = errors.New(
		"JoinTrackingQuery must be created via NewJoinTrackingQuery constructor",
	)
)

// JoinTrackingQuery is a user's request to view live tracking for a job they
// created. The response depends on the job's status: a pending job yields a
// waiting view, an assigned job yields the worker's public profile and latest
// known position.
type JoinTrackingQuery struct { //nolint:recvcheck //using for validation
	jobID  kernel.UUID
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewJoinTrackingQuery creates a query for a user to join job tracking.
func NewJoinTrackingQuery(jobID kernel.UUID, userID kernel.UUID) (JoinTrackingQuery, error) {
	query := JoinTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setJobID(jobID),
		query.setUserID(userID),
	); err != nil {
		return JoinTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q JoinTrackingQuery) Validate() error {
	return q.guard.Validate(ErrJoinTrackingQueryIsNotConstructed)
}

// JobID returns the job identifier from the query.
func (q JoinTrackingQuery) JobID() kernel.UUID {
	return q.jobID
}

// UserID returns the requesting user's identifier from the query.
func (q JoinTrackingQuery) UserID() kernel.UUID {
	return q.userID
}

func (q *JoinTrackingQuery) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.jobID = id
	return nil
}

func (q *JoinTrackingQuery) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.userID = id
	return nil
}
