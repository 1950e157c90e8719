package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func restoreJob(t *testing.T, id kernel.UUID, userID kernel.UUID, workerID *kernel.UUID, status job.Status) *job.Job {
	t.Helper()
	aggregate, err := job.RestoreJob(id, userID, workerID, status, "1 Main St", "fix the sink", time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func newHandler(jobRepo *MockJobRepository, workerRepo *MockWorkerRepository, locationRepo *MockLocationRepository) queries.JoinTrackingQueryHandler {
	return queries.NewJoinTrackingQueryHandler(jobRepo, workerRepo, locationRepo, slog.Default())
}

func TestJoinTrackingQueryHandler_Handle_PendingJob(t *testing.T) {
	// Given
	ctx := t.Context()
	jobID := kernel.NewUUID()
	userID := kernel.NewUUID()
	pending := restoreJob(t, jobID, userID, nil, job.Pending)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	mockLocationRepo := new(MockLocationRepository)
	mockJobRepo.On("Get", ctx, jobID).Return(pending, nil).Once()

	handler := newHandler(mockJobRepo, mockWorkerRepo, mockLocationRepo)
	query, err := queries.NewJoinTrackingQuery(jobID, userID)
	require.NoError(t, err)

	// When
	response, err := handler.Handle(ctx, query)

	// Then
	require.NoError(t, err)
	assert.True(t, response.IsPending)
	assert.Equal(t, job.Pending, response.JobStatus)
	assert.Nil(t, response.WorkerID)
	assert.Nil(t, response.Worker)
	assert.Nil(t, response.LastSample)
	mockJobRepo.AssertExpectations(t)
}

func TestJoinTrackingQueryHandler_Handle_JobNotFound(t *testing.T) {
	// Given
	ctx := t.Context()
	jobID := kernel.NewUUID()

	mockJobRepo := new(MockJobRepository)
	mockJobRepo.On("Get", ctx, jobID).
		Return(nil, errs.NewObjectNotFoundError("jobID", jobID)).Once()

	handler := newHandler(mockJobRepo, new(MockWorkerRepository), new(MockLocationRepository))
	query, err := queries.NewJoinTrackingQuery(jobID, kernel.NewUUID())
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, query)

	// Then
	require.ErrorIs(t, err, queries.ErrTrackingJobNotFound)
	mockJobRepo.AssertExpectations(t)
}

func TestJoinTrackingQueryHandler_Handle_UnauthorizedUserLearnsNothing(t *testing.T) {
	// Given: an assigned job being tracked by someone else
	ctx := t.Context()
	jobID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	inProgress := restoreJob(t, jobID, ownerID, &workerID, job.InProgress)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	mockLocationRepo := new(MockLocationRepository)
	mockJobRepo.On("Get", ctx, jobID).Return(inProgress, nil).Once()

	handler := newHandler(mockJobRepo, mockWorkerRepo, mockLocationRepo)
	query, err := queries.NewJoinTrackingQuery(jobID, kernel.NewUUID())
	require.NoError(t, err)

	// When
	response, err := handler.Handle(ctx, query)

	// Then: no worker or location data leaks, no lookups happen
	require.ErrorIs(t, err, queries.ErrTrackingNotAuthorized)
	assert.Equal(t, queries.JoinTrackingResponse{}, response)
	mockWorkerRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mockLocationRepo.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
	mockJobRepo.AssertExpectations(t)
}

func TestJoinTrackingQueryHandler_Handle_TerminalBranches(t *testing.T) {
	tests := []struct {
		status      job.Status
		expectedErr error
	}{
		{job.NoWorkersFound, queries.ErrTrackingNoWorkersFound},
		{job.Cancelled, queries.ErrTrackingJobCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			// Given
			ctx := t.Context()
			jobID := kernel.NewUUID()
			userID := kernel.NewUUID()
			aggregate := restoreJob(t, jobID, userID, nil, tt.status)

			mockJobRepo := new(MockJobRepository)
			mockJobRepo.On("Get", ctx, jobID).Return(aggregate, nil).Once()

			handler := newHandler(mockJobRepo, new(MockWorkerRepository), new(MockLocationRepository))
			query, err := queries.NewJoinTrackingQuery(jobID, userID)
			require.NoError(t, err)

			// When
			_, err = handler.Handle(ctx, query)

			// Then
			require.ErrorIs(t, err, tt.expectedErr)
			mockJobRepo.AssertExpectations(t)
		})
	}
}

func TestJoinTrackingQueryHandler_Handle_AssignedJobWithLocation(t *testing.T) {
	// Given
	ctx := t.Context()
	jobID := kernel.NewUUID()
	userID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	confirmed := restoreJob(t, jobID, userID, &workerID, job.Confirmed)

	workerAggregate, err := worker.RestoreWorker(
		workerID, "Alice", "Smith", "+34600111222", "", 5, true, time.Now().UTC(), nil,
	)
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
	require.NoError(t, err)
	sample, err := location.NewSample(workerID, point, time.Now().UTC())
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	mockLocationRepo := new(MockLocationRepository)
	mock.InOrder(
		mockJobRepo.On("Get", ctx, jobID).Return(confirmed, nil).Once(),
		mockWorkerRepo.On("Get", ctx, workerID).Return(workerAggregate, nil).Once(),
		mockLocationRepo.On("GetLatest", ctx, workerID).Return(sample, nil).Once(),
	)

	handler := newHandler(mockJobRepo, mockWorkerRepo, mockLocationRepo)
	query, err := queries.NewJoinTrackingQuery(jobID, userID)
	require.NoError(t, err)

	// When
	response, err := handler.Handle(ctx, query)

	// Then
	require.NoError(t, err)
	assert.False(t, response.IsPending)
	assert.Equal(t, job.Confirmed, response.JobStatus)
	require.NotNil(t, response.WorkerID)
	assert.True(t, response.WorkerID.IsEqual(workerID))
	assert.Equal(t, workerAggregate, response.Worker)
	require.NotNil(t, response.LastSample)
	assert.True(t, response.LastSample.Point().IsEqual(point))

	mockJobRepo.AssertExpectations(t)
	mockWorkerRepo.AssertExpectations(t)
	mockLocationRepo.AssertExpectations(t)
}

func TestJoinTrackingQueryHandler_Handle_AssignedJobWithoutLocation(t *testing.T) {
	// Given: worker assigned but never reported a position
	ctx := t.Context()
	jobID := kernel.NewUUID()
	userID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	inProgress := restoreJob(t, jobID, userID, &workerID, job.InProgress)

	workerAggregate, err := worker.RestoreWorker(
		workerID, "Alice", "Smith", "+34600111222", "", 5, true, time.Now().UTC(), nil,
	)
	require.NoError(t, err)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	mockLocationRepo := new(MockLocationRepository)
	mock.InOrder(
		mockJobRepo.On("Get", ctx, jobID).Return(inProgress, nil).Once(),
		mockWorkerRepo.On("Get", ctx, workerID).Return(workerAggregate, nil).Once(),
		mockLocationRepo.On("GetLatest", ctx, workerID).
			Return(location.Sample{}, errs.NewObjectNotFoundError("workerID", workerID)).Once(),
	)

	handler := newHandler(mockJobRepo, mockWorkerRepo, mockLocationRepo)
	query, err := queries.NewJoinTrackingQuery(jobID, userID)
	require.NoError(t, err)

	// When
	response, err := handler.Handle(ctx, query)

	// Then
	require.NoError(t, err)
	assert.Equal(t, workerAggregate, response.Worker)
	assert.Nil(t, response.LastSample)
}

func TestJoinTrackingQueryHandler_Handle_MissingWorkerProfileTolerated(t *testing.T) {
	// Given: assigned job whose worker row is gone
	ctx := t.Context()
	jobID := kernel.NewUUID()
	userID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	confirmed := restoreJob(t, jobID, userID, &workerID, job.Confirmed)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	mockLocationRepo := new(MockLocationRepository)
	mock.InOrder(
		mockJobRepo.On("Get", ctx, jobID).Return(confirmed, nil).Once(),
		mockWorkerRepo.On("Get", ctx, workerID).
			Return(nil, errs.NewObjectNotFoundError("workerID", workerID)).Once(),
	)

	handler := newHandler(mockJobRepo, mockWorkerRepo, mockLocationRepo)
	query, err := queries.NewJoinTrackingQuery(jobID, userID)
	require.NoError(t, err)

	// When
	response, err := handler.Handle(ctx, query)

	// Then: tracking still opens, just without worker details
	require.NoError(t, err)
	assert.Nil(t, response.Worker)
	assert.Nil(t, response.LastSample)
	mockLocationRepo.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
}
