package jobrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusIf atomically moves the job from expected to next status,
// optionally assigning a worker in the same statement. The WHERE clause
// carries the expected status, so a racing update that already changed the
// row makes this one match zero rows; that outcome is reported as
// errs.ErrStatusConflict for the caller to classify. A missing row is
// reported as errs.ErrObjectNotFound instead.
func (r *GormJobRepository) UpdateStatusIf(
	ctx context.Context,
	id kernel.UUID,
	expected job.Status,
	next job.Status,
	workerID *kernel.UUID,
) (*job.Job, error) {
	if err := errors.Join(id.Validate(), expected.Validate(), next.Validate()); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": int(next)}
	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return nil, err
		}
		updates["worker_id"] = workerID.Bytes()
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the job is gone or its status moved on.
		var dto JobDTO
		if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NewObjectNotFoundError("job", id.String())
			}
			return nil, err
		}
		return nil, errs.NewStatusConflictError("job "+id.String(), expected.String())
	}

	return r.Get(ctx, id)
}
