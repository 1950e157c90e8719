package queries

import (
	"context"
	"sort"

	"dispatch/internal/core/application/tracking"
)

// GetActiveSessionsQueryHandler lists the coordinator's active tracking
// sessions. The session store is the source here, not the database: sessions
// are process-local liveness metadata.
type GetActiveSessionsQueryHandler struct {
	sessions *tracking.Store
}

// NewGetActiveSessionsQueryHandler creates a handler for session enumeration.
func NewGetActiveSessionsQueryHandler(sessions *tracking.Store) GetActiveSessionsQueryHandler {
	return GetActiveSessionsQueryHandler{sessions: sessions}
}

// Handle executes the query. Sessions are sorted by job identifier for a
// stable listing.
func (h GetActiveSessionsQueryHandler) Handle(_ context.Context, query GetActiveSessionsQuery) ([]tracking.Session, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sessions := h.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].JobID.String() < sessions[j].JobID.String()
	})

	return sessions, nil
}
