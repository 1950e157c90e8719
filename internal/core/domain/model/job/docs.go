// Package job implements the Job aggregate root and its lifecycle state machine.
//
// A job moves along pending -> confirmed -> in_progress -> completed, with
// pending -> cancelled and pending -> no_workers_found as absorbing alternate
// terminals. The aggregate validates transitions and the worker-assignment
// invariant; the authoritative arbitration of racing accepts is a conditional
// update performed by the persistence adapter.
package job
