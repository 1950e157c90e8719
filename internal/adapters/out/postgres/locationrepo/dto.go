// Package locationrepo persists the latest known position per worker. The table
// holds at most one row per worker; every update overwrites the previous one.
// It backs the last-location replay when a user joins tracking, never job state.
package locationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// LocationDTO represents the single latest-position row per worker.
type LocationDTO struct {
	WorkerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat        float64
	Lng        float64
	RecordedAt time.Time
}

// TableName specifies the database table name for worker locations.
func (LocationDTO) TableName() string {
	return "worker_locations"
}

// toDomain converts a database DTO to a location sample value object.
func toDomain(dto LocationDTO) (location.Sample, error) {
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return location.Sample{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return location.Sample{}, err
	}

	return location.NewSample(workerID, point, dto.RecordedAt)
}
