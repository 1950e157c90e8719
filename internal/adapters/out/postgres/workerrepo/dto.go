// Package workerrepo provides data transfer objects and mapping functions for worker
// persistence. Besides the profile fields it carries the presence columns that the
// heartbeat flow refreshes and the presence expiry sweep ages out.
package workerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting worker aggregates.
type WorkerDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName       string
	LastName        string
	PhoneNumber     string
	ProfilePicture  string
	ExperienceYears int
	IsActive        bool      `gorm:"index"`
	LastActiveAt    time.Time `gorm:"index"`
	Location        GeoDTO    `gorm:"embedded;embeddedPrefix:location_"`
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// GeoDTO represents the embedded last known position of a worker.
// Both columns are null until the worker first reports a position.
type GeoDTO struct {
	Lat *float64
	Lng *float64
}

// fromDomain converts a worker domain aggregate to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:              aggregate.ID().Bytes(),
		FirstName:       aggregate.FirstName(),
		LastName:        aggregate.LastName(),
		PhoneNumber:     aggregate.PhoneNumber(),
		ExperienceYears: aggregate.ExperienceYears(),
		IsActive:        aggregate.IsActive(),
		LastActiveAt:    aggregate.LastActiveAt(),
	}

	if point := aggregate.Location(); point != nil {
		lat := point.Lat()
		lng := point.Lng()
		dto.Location = GeoDTO{Lat: &lat, Lng: &lng}
	}

	return dto
}

// toDomain converts a database DTO to a worker domain aggregate.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.Location.Lat != nil && dto.Location.Lng != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Location.Lat, *dto.Location.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	return worker.RestoreWorker(
		id,
		dto.FirstName,
		dto.LastName,
		dto.PhoneNumber,
		dto.ProfilePicture,
		dto.ExperienceYears,
		dto.IsActive,
		dto.LastActiveAt,
		point,
	)
}
