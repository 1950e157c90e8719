package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetActiveSessionsQueryIsNotConstructed = errors.New(
		"GetActiveSessionsQuery must be created via NewGetActiveSessionsQuery constructor",
	)
)

// GetActiveSessionsQuery enumerates the active tracking sessions. Exposed to
// the matching subsystem and the admin API.
type GetActiveSessionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveSessionsQuery creates a query to list active tracking sessions.
// This is a parameterless query that fetches the complete session list.
func NewGetActiveSessionsQuery() GetActiveSessionsQuery {
	return GetActiveSessionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveSessionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveSessionsQueryIsNotConstructed)
}
