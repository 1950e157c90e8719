// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, precondition checks
// against the persistent store, then mutation.
//
// Handlers depend on the ports repositories and the in-memory session store
// directly. There is no unit of work: no command mutates two aggregates in one
// database transaction, and the accept race is arbitrated by the repository's
// conditional status update rather than by transactional read-modify-write.
package commands
