// Package worker implements the Worker aggregate root: identity, the public
// profile shown to requesting users, and availability presence driven by
// heartbeats and explicit go-online/go-offline actions.
package worker
