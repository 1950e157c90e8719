// Package ws is the protocol-facing adapter of the coordinator: it upgrades
// websocket connections, validates inbound event payloads, dispatches them to
// the command and query handlers, and scopes outbound events to the right
// connections through the room router.
package ws

// Conn is an outbound connection as seen by the gateway and the room router.
// The concrete implementation is the gorilla/websocket client; tests use
// in-memory fakes.
type Conn interface {
	// ID uniquely identifies the connection for room membership and
	// session ownership.
	ID() string

	// Emit queues an event for delivery to the connection. Emit never
	// blocks the caller; delivery is best-effort on a slow or dead peer.
	Emit(event string, payload any)
}
