package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created through
	// the NewJob or RestoreJob factory methods. This ensures all jobs are properly validated.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
)

// Job represents a requested unit of service work tracked through a fixed lifecycle.
// It is the aggregate root that manages the job from creation through acceptance,
// in-progress work and completion.
//
// Job follows these invariants:
//   - Must have valid unique job and requesting-user identifiers
//   - Must have a non-empty address
//   - A worker is assigned if and only if status is Confirmed, InProgress or Completed
//   - Status transitions follow the rules defined on Status
//   - Can only be created through NewJob or RestoreJob
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. The persistent store remains the
// source of truth for status; this aggregate validates transitions before the
// conditional update is attempted there.
type Job struct {
	// id is the unique identifier for the job
	id kernel.UUID

	// userID identifies the requesting user
	userID kernel.UUID

	// workerID is the assigned worker's ID (nil until accepted)
	workerID *kernel.UUID

	// status represents the current state in the job lifecycle
	status Status

	// address is the service address, opaque to the coordinator
	address string

	// description is free-form text describing the requested work
	description string

	// createdAt records when the job was requested
	createdAt time.Time

	// isConstructed ensures the job was created via a constructor
	isConstructed bool
}

// NewJob creates a new Job in Pending status with validation. This is the primary
// way to create a job, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the job (must be valid UUID)
//   - userID: Identifier of the requesting user (must be valid UUID)
//   - address: Service address (must be non-empty)
//   - description: Free-form description of the work (may be empty)
//   - createdAt: Creation time (must be non-zero)
//
// Returns:
//   - *Job: The created job if all validations pass
//   - error: Validation error if any parameter is invalid
func NewJob(id kernel.UUID, userID kernel.UUID, address string, description string, createdAt time.Time) (*Job, error) {
	j := &Job{
		status:        Pending,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setUserID(userID),
		j.setAddress(address),
		j.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persistence without running creation-time defaults.
// It validates the status value and the status/worker consistency invariant, so a
// corrupted row cannot materialize as a valid aggregate.
func RestoreJob(
	id kernel.UUID,
	userID kernel.UUID,
	workerID *kernel.UUID,
	status Status,
	address string,
	description string,
	createdAt time.Time,
) (*Job, error) {
	j := &Job{
		status:        status,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setUserID(userID),
		j.setAddress(address),
		j.setCreatedAt(createdAt),
		status.Validate(),
		status.ValidateCanHaveWorker(workerID != nil),
	); err != nil {
		return nil, err
	}

	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return nil, err
		}
		id := *workerID
		j.workerID = &id
	}

	return j, nil
}

// Validate ensures the Job instance was properly constructed through a factory method.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// UserID returns the requesting user's identifier.
func (j *Job) UserID() kernel.UUID {
	return j.userID
}

// Worker returns the assigned worker's ID.
// Returns nil if no worker is assigned.
func (j *Job) Worker() *kernel.UUID {
	return j.workerID
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// Address returns the service address.
func (j *Job) Address() string {
	return j.address
}

// Description returns the free-form description of the requested work.
func (j *Job) Description() string {
	return j.description
}

// CreatedAt returns the creation time of the job.
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// Accept assigns the job to a worker and moves it to Confirmed.
//
// Business rules:
//   - The worker ID must be valid
//   - The job must be in Pending status with no worker assigned
//
// Note that in-process acceptance is a precondition check only: the
// authoritative check-and-set happens as a conditional update against the
// persistent store. Two racing workers are arbitrated there, not here.
func (j *Job) Accept(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if j.workerID != nil {
		return errs.NewStatusConflictError("job "+j.id.String(), Pending.String())
	}

	newStatus, err := j.status.Accept()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.workerID = &workerID
	return nil
}

// Start moves an accepted job to InProgress.
//
// Business rules:
//   - The job must be in Confirmed status
func (j *Job) Start() error {
	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Complete marks an in-progress job as Completed.
//
// Business rules:
//   - The job must be in InProgress status
//   - Completed is a final state with no further transitions
func (j *Job) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Cancel moves a pending job to Cancelled.
func (j *Job) Cancel() error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// ExhaustWorkers moves a pending job to NoWorkersFound.
// Called when the matching subsystem runs out of candidate workers.
func (j *Job) ExhaustWorkers() error {
	newStatus, err := j.status.ExhaustWorkers()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// IsOwnedBy reports whether the given worker is the job's assigned worker.
func (j *Job) IsOwnedBy(workerID kernel.UUID) bool {
	return j.workerID != nil && j.workerID.IsEqual(workerID)
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	j.userID = userID
	return nil
}

func (j *Job) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	j.address = address
	return nil
}

func (j *Job) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	j.createdAt = createdAt
	return nil
}
