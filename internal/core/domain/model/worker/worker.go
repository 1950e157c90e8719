package worker

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultAvatarURL is the profile picture handed to clients when a worker has
// not uploaded one.
const DefaultAvatarURL = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"

// Domain errors for worker operations.
var (
	// ErrFirstNameIsRequired is returned when attempting to create a worker without a first name.
	ErrFirstNameIsRequired = errs.NewValueIsRequiredError("firstName")
	// ErrLastNameIsRequired is returned when attempting to create a worker without a last name.
	ErrLastNameIsRequired = errs.NewValueIsRequiredError("lastName")
	// ErrWorkerIsNotConstructed is returned when using an improperly initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker constructor")
)

// Worker represents a service worker in the system.
// It is an aggregate root that manages worker identity, public profile, and
// availability presence.
//
// Key responsibilities:
//   - Managing worker identity and public profile fields shown to requesting users
//   - Tracking availability presence (active flag plus last-active timestamp)
//   - Holding the last reported position for the matching subsystem
//
// Business rules:
//   - Worker must have a valid UUID and non-empty first and last name
//   - Experience years cannot be negative
//   - Presence mutations always refresh the last-active timestamp
//
// Example usage:
//
//	w, err := NewWorker(kernel.NewUUID(), "Alice", "Smith", "+34600111222", 5)
//	if err != nil {
//	    // Handle construction error
//	}
//	w.GoOnline(time.Now().UTC())
type Worker struct {
	// id uniquely identifies the worker
	id kernel.UUID
	// firstName and lastName form the public display name
	firstName string
	lastName  string
	// phoneNumber is shared with the requesting user once a job is assigned
	phoneNumber string
	// profilePicture is an optional avatar URL
	profilePicture string
	// experienceYears is shown on the worker's public profile
	experienceYears int
	// isActive reports whether the worker is accepting work
	isActive bool
	// lastActiveAt is refreshed by heartbeats and presence changes
	lastActiveAt time.Time
	// location is the last reported position, if any
	location *kernel.GeoPoint
	// guard ensures the worker was properly constructed
	guard guard.ConstructorGuard
}

// NewWorker creates a new Worker with the specified profile.
// New workers start inactive; they become available through GoOnline or a heartbeat.
//
// Parameters:
//   - id: Unique identifier for the worker (must be valid UUID)
//   - firstName, lastName: Public display name (both must be non-empty)
//   - phoneNumber: Contact number shared on assignment (may be empty)
//   - experienceYears: Years of experience (must not be negative)
//
// Returns:
//   - *Worker: A fully initialized worker
//   - error: Validation error if any parameter is invalid
func NewWorker(id kernel.UUID, firstName string, lastName string, phoneNumber string, experienceYears int) (*Worker, error) {
	w := &Worker{
		phoneNumber: phoneNumber,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setFirstName(firstName),
		w.setLastName(lastName),
		w.setExperienceYears(experienceYears),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWorker reconstructs a Worker aggregate from persistent storage,
// including its presence state and last known location.
func RestoreWorker(
	id kernel.UUID,
	firstName string,
	lastName string,
	phoneNumber string,
	profilePicture string,
	experienceYears int,
	isActive bool,
	lastActiveAt time.Time,
	location *kernel.GeoPoint,
) (*Worker, error) {
	w, err := NewWorker(id, firstName, lastName, phoneNumber, experienceYears)
	if err != nil {
		return nil, err
	}

	w.profilePicture = profilePicture
	w.isActive = isActive
	w.lastActiveAt = lastActiveAt

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		w.location = &loc
	}

	return w, nil
}

// Validate ensures the Worker instance was properly constructed through a factory method.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// FirstName returns the worker's first name.
func (w *Worker) FirstName() string {
	return w.firstName
}

// LastName returns the worker's last name.
func (w *Worker) LastName() string {
	return w.lastName
}

// FullName returns the public display name, e.g. "Alice Smith".
func (w *Worker) FullName() string {
	return w.firstName + " " + w.lastName
}

// PhoneNumber returns the worker's contact number.
func (w *Worker) PhoneNumber() string {
	return w.phoneNumber
}

// AvatarURL returns the worker's profile picture, falling back to
// DefaultAvatarURL when none was uploaded.
func (w *Worker) AvatarURL() string {
	if w.profilePicture == "" {
		return DefaultAvatarURL
	}
	return w.profilePicture
}

// ExperienceYears returns the worker's years of experience.
func (w *Worker) ExperienceYears() int {
	return w.experienceYears
}

// IsActive reports whether the worker is currently accepting work.
func (w *Worker) IsActive() bool {
	return w.isActive
}

// LastActiveAt returns the time of the worker's latest presence signal.
func (w *Worker) LastActiveAt() time.Time {
	return w.lastActiveAt
}

// Location returns the worker's last reported position.
// Returns nil if the worker never reported one.
func (w *Worker) Location() *kernel.GeoPoint {
	return w.location
}

// GoOnline marks the worker as available for new jobs.
func (w *Worker) GoOnline(now time.Time) {
	w.isActive = true
	w.lastActiveAt = now
}

// GoOffline marks the worker as unavailable for new jobs.
func (w *Worker) GoOffline(now time.Time) {
	w.isActive = false
	w.lastActiveAt = now
}

// Heartbeat refreshes the worker's presence. A heartbeating worker is
// considered active even if it never sent an explicit go-online.
func (w *Worker) Heartbeat(now time.Time) {
	w.isActive = true
	w.lastActiveAt = now
}

// SetLocation records the worker's last reported position.
func (w *Worker) SetLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	w.location = &point
	return nil
}

// IsEqual compares two workers by their unique identifiers.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setFirstName(firstName string) error {
	if firstName == "" {
		return ErrFirstNameIsRequired
	}
	w.firstName = firstName
	return nil
}

func (w *Worker) setLastName(lastName string) error {
	if lastName == "" {
		return ErrLastNameIsRequired
	}
	w.lastName = lastName
	return nil
}

func (w *Worker) setExperienceYears(experienceYears int) error {
	if experienceYears < 0 {
		return errs.NewValueIsInvalidError("experienceYears")
	}
	w.experienceYears = experienceYears
	return nil
}
