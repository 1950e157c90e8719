package workerrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkerRepository implements WorkerRepository using GORM.
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Add saves a new worker to the database.
func (r *GormWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a worker by ID.
func (r *GormWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("worker", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdatePresence sets the worker's active flag and last-active timestamp.
func (r *GormWorkerRepository) UpdatePresence(ctx context.Context, id kernel.UUID, isActive bool, lastActiveAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"is_active": isActive, "last_active_at": lastActiveAt})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", id.String())
	}

	return nil
}

// DeactivateStale marks active workers whose last-active timestamp is older
// than cutoff as inactive. The last-active timestamp itself is left alone so
// the sweep stays idempotent.
func (r *GormWorkerRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&WorkerDTO{}).
		Where("is_active = ? AND last_active_at < ?", true, cutoff).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
