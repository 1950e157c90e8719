package tracking

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Session is the ephemeral binding of a job to its accepting worker and
// requesting user for the duration of live tracking. It is created when a
// worker accepts a job and destroyed when the job completes or the owning
// connection disconnects. A session is liveness/ownership metadata only; it is
// never authoritative for job status.
type Session struct {
	// JobID keys the session; at most one session exists per job.
	JobID kernel.UUID

	// WorkerID is the accepting worker, the only caller allowed to relay
	// location updates for the job.
	WorkerID kernel.UUID

	// UserID is the requesting user whose room receives relayed updates.
	UserID kernel.UUID

	// ConnID identifies the worker connection owning the session. Disconnect
	// cleanup removes every session owned by the closing connection.
	ConnID string

	// LastUpdate is refreshed on every relayed location update and consulted
	// by the idle-session reaper.
	LastUpdate time.Time
}
