package ws

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// BroadcastRoom is joined by workers signaling availability. The matching
// subsystem fans out new-job notices to it.
const BroadcastRoom = "job_broadcast"

// JobRoom names the room scoping job-specific events to the assigned worker
// and the users tracking the job.
func JobRoom(jobID kernel.UUID) string {
	return "job-" + jobID.String()
}

// UserRoom names the per-user room that receives job acceptance and location
// relay events for jobs the user created.
func UserRoom(userID kernel.UUID) string {
	return "user-" + userID.String()
}

// Rooms is the publish-subscribe router grouping connections so that only the
// parties associated with a job receive its events. Joining is idempotent and
// a connection may belong to many rooms. All operations are safe for
// concurrent use.
type Rooms struct {
	mu sync.RWMutex

	// conns holds every registered connection, for global emits.
	conns map[string]Conn

	// members maps room name to the IDs of joined connections.
	members map[string]map[string]struct{}

	// joined maps connection ID to the rooms it belongs to, for cleanup.
	joined map[string]map[string]struct{}
}

// NewRooms creates an empty room router.
func NewRooms() *Rooms {
	return &Rooms{
		conns:   make(map[string]Conn),
		members: make(map[string]map[string]struct{}),
		joined:  make(map[string]map[string]struct{}),
	}
}

// Register adds a connection to the router. Until registered, a connection
// cannot join rooms or receive global emits.
func (r *Rooms) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[conn.ID()] = conn
}

// Unregister removes a connection and its room memberships.
func (r *Rooms) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.joined[connID] {
		delete(r.members[room], connID)
		if len(r.members[room]) == 0 {
			delete(r.members, room)
		}
	}
	delete(r.joined, connID)
	delete(r.conns, connID)
}

// Join adds the connection to a room. Joining twice is a no-op.
func (r *Rooms) Join(room string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn.ID()]; !ok {
		r.conns[conn.ID()] = conn
	}
	if r.members[room] == nil {
		r.members[room] = make(map[string]struct{})
	}
	r.members[room][conn.ID()] = struct{}{}

	if r.joined[conn.ID()] == nil {
		r.joined[conn.ID()] = make(map[string]struct{})
	}
	r.joined[conn.ID()][room] = struct{}{}
}

// Leave removes the connection from a room.
func (r *Rooms) Leave(room string, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members[room], connID)
	if len(r.members[room]) == 0 {
		delete(r.members, room)
	}
	delete(r.joined[connID], room)
}

// InRoom reports whether the connection belongs to the room.
func (r *Rooms) InRoom(room string, connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[room][connID]
	return ok
}

// Emit delivers an event to every connection in the room.
func (r *Rooms) Emit(room string, event string, payload any) {
	for _, conn := range r.roomConns(room) {
		conn.Emit(event, payload)
	}
}

// EmitAll delivers an event to every registered connection, mirroring the
// global job_unavailable retraction.
func (r *Rooms) EmitAll(event string, payload any) {
	r.mu.RLock()
	conns := make([]Conn, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	for _, conn := range conns {
		conn.Emit(event, payload)
	}
}

func (r *Rooms) roomConns(room string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]Conn, 0, len(r.members[room]))
	for connID := range r.members[room] {
		if conn, ok := r.conns[connID]; ok {
			conns = append(conns, conn)
		}
	}
	return conns
}
