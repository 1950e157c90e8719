package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
	"dispatch/internal/core/domain/model/worker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) UpdateStatusIf(
	ctx context.Context,
	id kernel.UUID,
	expected job.Status,
	next job.Status,
	workerID *kernel.UUID,
) (*job.Job, error) {
	args := m.Called(ctx, id, expected, next, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) UpdatePresence(ctx context.Context, id kernel.UUID, isActive bool, lastActiveAt time.Time) error {
	args := m.Called(ctx, id, isActive, lastActiveAt)
	return args.Error(0)
}

func (m *MockWorkerRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Upsert(ctx context.Context, workerID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time) error {
	args := m.Called(ctx, workerID, point, recordedAt)
	return args.Error(0)
}

func (m *MockLocationRepository) GetLatest(ctx context.Context, workerID kernel.UUID) (location.Sample, error) {
	args := m.Called(ctx, workerID)
	return args.Get(0).(location.Sample), args.Error(1)
}

// Aggregate fixtures shared by the handler tests.

func restoreJob(t *testing.T, id kernel.UUID, userID kernel.UUID, workerID *kernel.UUID, status job.Status) *job.Job {
	t.Helper()
	aggregate, err := job.RestoreJob(id, userID, workerID, status, "1 Main St", "fix the sink", time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func restoreWorker(t *testing.T, id kernel.UUID, isActive bool) *worker.Worker {
	t.Helper()
	aggregate, err := worker.RestoreWorker(
		id, "Alice", "Smith", "+34600111222", "", 5, isActive, time.Now().UTC(), nil,
	)
	require.NoError(t, err)
	return aggregate
}
