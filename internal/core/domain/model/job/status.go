package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a service job.
// It implements a state machine with defined transitions to ensure
// jobs follow the correct dispatch workflow.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──> InProgress ──> Completed
//	          ├──> Cancelled
//	          └──> NoWorkersFound
//
// No transition skips a state and no transition reverses. Cancelled and
// NoWorkersFound are absorbing alternate terminals reachable only from Pending.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and the wire protocol.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a job is first created.
	// Jobs in this status are waiting for a worker to accept them.
	Pending

	// Confirmed indicates a worker has accepted the job but not yet started work.
	Confirmed

	// InProgress indicates the assigned worker has started the job.
	InProgress

	// Completed indicates the job has been finished by the assigned worker.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the requesting user withdrew the job before acceptance.
	// This is a final state with no further transitions allowed.
	Cancelled

	// NoWorkersFound indicates the matching subsystem exhausted all candidates.
	// This is a final state with no further transitions allowed.
	NoWorkersFound
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		InProgress:     "in_progress",
		Completed:      "completed",
		Cancelled:      "cancelled",
		NoWorkersFound: "no_workers_found",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		InProgress:     "in_progress",
		Completed:      "completed",
		Cancelled:      "cancelled",
		NoWorkersFound: "no_workers_found",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "in_progress".
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is a final state from which
// no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == NoWorkersFound
}

// ValidateCanHaveWorker validates the consistency between job status and worker assignment.
//
// Business rules:
//   - Pending, Cancelled and NoWorkersFound jobs must not have a worker assigned
//   - Confirmed, InProgress and Completed jobs must have a worker assigned
func (s Status) ValidateCanHaveWorker(hasWorker bool) error {
	assigned := s == Confirmed || s == InProgress || s == Completed

	if hasWorker && !assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a worker", s.String()),
		)
	}

	if !hasWorker && assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no worker", s.String()),
		)
	}

	return nil
}

// Accept transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Returns:
//   - (Confirmed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}

	return Confirmed, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Confirmed -> InProgress
func (s Status) Start() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}

// ExhaustWorkers transitions the status to NoWorkersFound.
//
// Valid transitions:
//   - Pending -> NoWorkersFound
func (s Status) ExhaustWorkers() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark no workers found", s.String()),
		)
	}

	return NoWorkersFound, nil
}
