package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptJobCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	jobID := kernel.NewUUID()
	userID := kernel.NewUUID()
	workerID := kernel.NewUUID()

	pending := restoreJob(t, jobID, userID, nil, job.Pending)
	confirmed := restoreJob(t, jobID, userID, &workerID, job.Confirmed)
	activeWorker := restoreWorker(t, workerID, true)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	sessions := tracking.NewStore()

	mock.InOrder(
		mockJobRepo.On("Get", ctx, jobID).Return(pending, nil).Once(),
		mockWorkerRepo.On("Get", ctx, workerID).Return(activeWorker, nil).Once(),
		mockJobRepo.On("UpdateStatusIf", ctx, jobID, job.Pending, job.Confirmed, &workerID).
			Return(confirmed, nil).Once(),
	)

	handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
	cmd, err := commands.NewAcceptJobCommand(jobID, workerID, "conn-1")
	require.NoError(t, err)

	// When
	result, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, confirmed, result.Job)
	assert.Equal(t, activeWorker, result.Worker)

	session, ok := sessions.Get(jobID)
	require.True(t, ok, "acceptance must register a tracking session")
	assert.Equal(t, workerID, session.WorkerID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "conn-1", session.ConnID)

	mockJobRepo.AssertExpectations(t)
	mockWorkerRepo.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_JobNotFound(t *testing.T) {
	// Given
	ctx := t.Context()
	jobID := kernel.NewUUID()
	workerID := kernel.NewUUID()

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	sessions := tracking.NewStore()

	mockJobRepo.On("Get", ctx, jobID).
		Return(nil, errs.NewObjectNotFoundError("jobID", jobID)).Once()

	handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
	cmd, err := commands.NewAcceptJobCommand(jobID, workerID, "conn-1")
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, commands.ErrJobNotFound)
	assert.Equal(t, 0, sessions.Len())
	mockJobRepo.AssertExpectations(t)
	mockWorkerRepo.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_JobAlreadyAccepted(t *testing.T) {
	// Given: job already confirmed with a different worker
	ctx := t.Context()
	jobID := kernel.NewUUID()
	otherWorkerID := kernel.NewUUID()
	confirmed := restoreJob(t, jobID, kernel.NewUUID(), &otherWorkerID, job.Confirmed)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	sessions := tracking.NewStore()

	mockJobRepo.On("Get", ctx, jobID).Return(confirmed, nil).Once()

	handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
	cmd, err := commands.NewAcceptJobCommand(jobID, kernel.NewUUID(), "conn-1")
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, commands.ErrJobAlreadyAccepted)
	assert.Equal(t, 0, sessions.Len())
	mockJobRepo.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_JobNoLongerAvailable(t *testing.T) {
	// Given: job cancelled without a worker assignment
	ctx := t.Context()
	jobID := kernel.NewUUID()
	cancelled := restoreJob(t, jobID, kernel.NewUUID(), nil, job.Cancelled)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	sessions := tracking.NewStore()

	mockJobRepo.On("Get", ctx, jobID).Return(cancelled, nil).Once()

	handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
	cmd, err := commands.NewAcceptJobCommand(jobID, kernel.NewUUID(), "conn-1")
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, commands.ErrJobNoLongerAvailable)
	mockJobRepo.AssertExpectations(t)
}

func TestAcceptJobCommandHandler_Handle_WorkerMissingOrInactive(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, repo *MockWorkerRepository, workerID kernel.UUID)
	}{
		{
			name: "worker missing",
			setup: func(t *testing.T, repo *MockWorkerRepository, workerID kernel.UUID) {
				t.Helper()
				repo.On("Get", mock.Anything, workerID).
					Return(nil, errs.NewObjectNotFoundError("workerID", workerID)).Once()
			},
		},
		{
			name: "worker inactive",
			setup: func(t *testing.T, repo *MockWorkerRepository, workerID kernel.UUID) {
				t.Helper()
				repo.On("Get", mock.Anything, workerID).
					Return(restoreWorker(t, workerID, false), nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			ctx := t.Context()
			jobID := kernel.NewUUID()
			workerID := kernel.NewUUID()
			pending := restoreJob(t, jobID, kernel.NewUUID(), nil, job.Pending)

			mockJobRepo := new(MockJobRepository)
			mockWorkerRepo := new(MockWorkerRepository)
			sessions := tracking.NewStore()

			mockJobRepo.On("Get", ctx, jobID).Return(pending, nil).Once()
			tt.setup(t, mockWorkerRepo, workerID)

			handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
			cmd, err := commands.NewAcceptJobCommand(jobID, workerID, "conn-1")
			require.NoError(t, err)

			// When
			_, err = handler.Handle(ctx, cmd)

			// Then
			require.ErrorIs(t, err, commands.ErrWorkerUnavailable)
			assert.Equal(t, 0, sessions.Len())
			mockJobRepo.AssertExpectations(t)
			mockWorkerRepo.AssertExpectations(t)
		})
	}
}

func TestAcceptJobCommandHandler_Handle_LostRaceIsClassified(t *testing.T) {
	// Given: the conditional update fails because another worker won between
	// the precondition read and the update
	ctx := t.Context()
	jobID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	winnerID := kernel.NewUUID()

	pending := restoreJob(t, jobID, kernel.NewUUID(), nil, job.Pending)
	takenByWinner := restoreJob(t, jobID, pending.UserID(), &winnerID, job.Confirmed)

	mockJobRepo := new(MockJobRepository)
	mockWorkerRepo := new(MockWorkerRepository)
	sessions := tracking.NewStore()

	mock.InOrder(
		mockJobRepo.On("Get", ctx, jobID).Return(pending, nil).Once(),
		mockWorkerRepo.On("Get", ctx, workerID).Return(restoreWorker(t, workerID, true), nil).Once(),
		mockJobRepo.On("UpdateStatusIf", ctx, jobID, job.Pending, job.Confirmed, &workerID).
			Return(nil, errs.NewStatusConflictError("job "+jobID.String(), job.Pending.String())).Once(),
		mockJobRepo.On("Get", ctx, jobID).Return(takenByWinner, nil).Once(),
	)

	handler := commands.NewAcceptJobCommandHandler(mockJobRepo, mockWorkerRepo, sessions)
	cmd, err := commands.NewAcceptJobCommand(jobID, workerID, "conn-1")
	require.NoError(t, err)

	// When
	_, err = handler.Handle(ctx, cmd)

	// Then
	require.ErrorIs(t, err, commands.ErrJobAlreadyAccepted)
	assert.Equal(t, 0, sessions.Len(), "loser must not register a session")
	mockJobRepo.AssertExpectations(t)
	mockWorkerRepo.AssertExpectations(t)
}

// casJobRepository is an in-memory JobRepository whose UpdateStatusIf is a
// genuine check-and-set, used to exercise the accept race with real
// concurrency instead of scripted mocks.
type casJobRepository struct {
	mu       sync.Mutex
	id       kernel.UUID
	userID   kernel.UUID
	workerID *kernel.UUID
	status   job.Status
}

func newCASJobRepository(id kernel.UUID, userID kernel.UUID) *casJobRepository {
	return &casJobRepository{id: id, userID: userID, status: job.Pending}
}

func (r *casJobRepository) snapshot() (*job.Job, error) {
	return job.RestoreJob(r.id, r.userID, r.workerID, r.status, "1 Main St", "", time.Now().UTC())
}

func (r *casJobRepository) Add(_ context.Context, _ *job.Job) error {
	return nil
}

func (r *casJobRepository) Get(_ context.Context, _ kernel.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *casJobRepository) UpdateStatusIf(
	_ context.Context,
	id kernel.UUID,
	expected job.Status,
	next job.Status,
	workerID *kernel.UUID,
) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != expected {
		return nil, errs.NewStatusConflictError("job "+id.String(), expected.String())
	}
	r.status = next
	if workerID != nil {
		claimed := *workerID
		r.workerID = &claimed
	}
	return r.snapshot()
}

// activeWorkerRepository answers every lookup with an active worker.
type activeWorkerRepository struct{}

func (activeWorkerRepository) Add(_ context.Context, _ *worker.Worker) error {
	return nil
}

func (activeWorkerRepository) Get(_ context.Context, id kernel.UUID) (*worker.Worker, error) {
	return worker.RestoreWorker(id, "Race", "Runner", "", "", 1, true, time.Now().UTC(), nil)
}

func (activeWorkerRepository) UpdatePresence(_ context.Context, _ kernel.UUID, _ bool, _ time.Time) error {
	return nil
}

func (activeWorkerRepository) DeactivateStale(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func TestAcceptJobCommandHandler_Handle_ConcurrentAcceptsExactlyOneWins(t *testing.T) {
	// Given: one pending job, five workers racing to accept it
	const racers = 5

	ctx := t.Context()
	jobID := kernel.NewUUID()
	repo := newCASJobRepository(jobID, kernel.NewUUID())
	sessions := tracking.NewStore()
	handler := commands.NewAcceptJobCommandHandler(repo, activeWorkerRepository{}, sessions)

	results := make([]error, racers)
	var wg sync.WaitGroup

	// When
	for i := range racers {
		cmd, err := commands.NewAcceptJobCommand(jobID, kernel.NewUUID(), "conn-"+string(rune('a'+i)))
		require.NoError(t, err)

		wg.Add(1)
		go func(i int, cmd commands.AcceptJobCommand) {
			defer wg.Done()
			_, results[i] = handler.Handle(ctx, cmd)
		}(i, cmd)
	}
	wg.Wait()

	// Then: exactly one success, every loser classified as unavailable
	successes := 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			assert.True(t,
				errors.Is(err, commands.ErrJobAlreadyAccepted) ||
					errors.Is(err, commands.ErrJobNoLongerAvailable),
				"unexpected loser error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, sessions.Len())

	final, err := repo.Get(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, job.Confirmed, final.Status())
	require.NotNil(t, final.Worker())

	session, ok := sessions.Get(jobID)
	require.True(t, ok)
	assert.True(t, session.WorkerID.IsEqual(*final.Worker()), "session must belong to the winning worker")
}
