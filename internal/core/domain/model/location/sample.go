// Package location implements the Location Sample value object: a single
// timestamped worker position. Samples are persisted as the latest known
// location per worker and retained in-memory as a bounded trail per job.
// They are never a source of truth for job state.
package location

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrSampleIsNotConstructed is returned when using an improperly initialized Sample.
var ErrSampleIsNotConstructed = errors.New("Sample must be created via NewSample constructor")

// Sample is an immutable timestamped position reported by a worker.
type Sample struct {
	workerID   kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewSample creates a Sample for the given worker, position and time.
func NewSample(workerID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time) (Sample, error) {
	if err := errors.Join(workerID.Validate(), point.Validate()); err != nil {
		return Sample{}, err
	}
	if recordedAt.IsZero() {
		return Sample{}, errs.NewValueIsRequiredError("recordedAt")
	}

	return Sample{
		workerID:   workerID,
		point:      point,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Sample was created via NewSample.
func (s Sample) Validate() error {
	return s.guard.Validate(ErrSampleIsNotConstructed)
}

// WorkerID returns the reporting worker's identifier.
func (s Sample) WorkerID() kernel.UUID {
	return s.workerID
}

// Point returns the reported position.
func (s Sample) Point() kernel.GeoPoint {
	return s.point
}

// RecordedAt returns the time the position was reported.
func (s Sample) RecordedAt() time.Time {
	return s.recordedAt
}
