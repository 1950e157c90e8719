// Package jobrepo provides data transfer objects and mapping functions for job persistence.
// This package implements the repository pattern for the job domain aggregate, handling
// the conversion between domain entities and database representations. The jobs table is
// the single source of truth for job status; the conditional status update lives here.
package jobrepo

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Indexed by status and worker assignment for the dispatch queries.
type JobDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index"`
	WorkerID    *uuid.UUID `gorm:"type:uuid;index"`
	Status      int        `gorm:"index"`
	Address     string
	Description string
	CreatedAt   time.Time
}

// TableName specifies the database table name for job entities.
func (JobDTO) TableName() string {
	return "jobs"
}

// fromDomain converts a job domain aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	return JobDTO{
		ID:          aggregate.ID().Bytes(),
		UserID:      aggregate.UserID().Bytes(),
		WorkerID:    workerID,
		Status:      int(aggregate.Status()),
		Address:     aggregate.Address(),
		Description: aggregate.Description(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a job domain aggregate.
// RestoreJob re-validates the status value and the status/worker consistency
// invariant, so a corrupted row cannot materialize as a valid aggregate.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}

		workerID = &wID
	}

	return job.RestoreJob(id, userID, workerID, job.Status(dto.Status), dto.Address, dto.Description, dto.CreatedAt)
}
