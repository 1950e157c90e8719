// Package tracking implements the in-memory registry of active job-tracking
// sessions and the bounded per-job location trail.
//
// The store is an explicitly owned, lifecycle-scoped instance: tests and the
// composition root each construct their own rather than sharing a process-wide
// singleton. A process restart drops all sessions; the persistent store stays
// the single source of truth for job state.
package tracking

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
)

// Store is a registry of active tracking sessions keyed by job identifier.
// All operations are safe for concurrent use. The at-most-one-session-per-job
// invariant is enforced by keyed overwrite and removal.
type Store struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]Session
	trails   map[kernel.UUID]*Trail
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[kernel.UUID]Session),
		trails:   make(map[kernel.UUID]*Trail),
	}
}

// Put registers a session, overwriting any existing session for the same job.
func (s *Store) Put(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.JobID] = session
}

// Get returns the session for the given job, if one is active.
func (s *Store) Get(jobID kernel.UUID) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[jobID]
	return session, ok
}

// Remove destroys the session and its trail for the given job.
// Returns the removed session, if one was active.
func (s *Store) Remove(jobID kernel.UUID) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[jobID]
	if ok {
		delete(s.sessions, jobID)
		delete(s.trails, jobID)
	}
	return session, ok
}

// RemoveByConn destroys every session owned by the given connection and
// returns them. Sessions owned by other connections are untouched.
func (s *Store) RemoveByConn(connID string) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []Session
	for jobID, session := range s.sessions {
		if session.ConnID == connID {
			removed = append(removed, session)
			delete(s.sessions, jobID)
			delete(s.trails, jobID)
		}
	}
	return removed
}

// Touch refreshes the session's last-update time.
// Reports whether a session for the job was active.
func (s *Store) Touch(jobID kernel.UUID, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[jobID]
	if !ok {
		return false
	}
	session.LastUpdate = at
	s.sessions[jobID] = session
	return true
}

// List returns a snapshot of all active sessions.
func (s *Store) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// ReapIdle destroys every session whose last update is older than cutoff and
// returns the removed sessions so the caller can notify affected parties.
func (s *Store) ReapIdle(cutoff time.Time) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reaped []Session
	for jobID, session := range s.sessions {
		if session.LastUpdate.Before(cutoff) {
			reaped = append(reaped, session)
			delete(s.sessions, jobID)
			delete(s.trails, jobID)
		}
	}
	return reaped
}

// AppendSample adds a location sample to the job's bounded trail.
// Samples for jobs without an active session are dropped.
func (s *Store) AppendSample(jobID kernel.UUID, sample location.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[jobID]; !ok {
		return
	}
	trail, ok := s.trails[jobID]
	if !ok {
		trail = &Trail{}
		s.trails[jobID] = trail
	}
	trail.Append(sample)
}

// TrailSamples returns the job's retained samples oldest-first.
func (s *Store) TrailSamples(jobID kernel.UUID) []location.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trail, ok := s.trails[jobID]
	if !ok {
		return nil
	}
	return trail.Samples()
}
