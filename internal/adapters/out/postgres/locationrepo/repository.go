package locationrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// Upsert stores the worker's latest position, inserting or overwriting the
// single row keyed by worker identifier.
func (r *GormLocationRepository) Upsert(ctx context.Context, workerID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time) error {
	if err := errors.Join(workerID.Validate(), point.Validate()); err != nil {
		return err
	}

	dto := LocationDTO{
		WorkerID:   workerID.Bytes(),
		Lat:        point.Lat(),
		Lng:        point.Lng(),
		RecordedAt: recordedAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worker_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"lat", "lng", "recorded_at"}),
		}).
		Create(&dto).Error
}

// GetLatest retrieves the worker's latest known position.
func (r *GormLocationRepository) GetLatest(ctx context.Context, workerID kernel.UUID) (location.Sample, error) {
	if err := workerID.Validate(); err != nil {
		return location.Sample{}, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "worker_id = ?", workerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return location.Sample{}, errs.NewObjectNotFoundError("workerLocation", workerID.String())
		}
		return location.Sample{}, err
	}

	return toDomain(dto)
}
