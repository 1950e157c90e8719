package queries

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrTrackingJobNotFound is returned when the requested job does not exist.
	ErrTrackingJobNotFound = errors.New("job not found")

	// ErrTrackingNotAuthorized is returned when the caller did not create the
	// job. Nothing about the job leaks in that case, not even its status.
	ErrTrackingNotAuthorized = errors.New("not authorized to track this job")

	// ErrTrackingNoWorkersFound is returned for jobs whose candidate search
	// was exhausted.
	ErrTrackingNoWorkersFound = errors.New("no workers available")

	// ErrTrackingJobCancelled is returned for cancelled jobs.
	ErrTrackingJobCancelled = errors.New("job was cancelled")
)

// JoinTrackingQueryHandler builds the tracking view a user sees when opening
// live tracking for one of their jobs.
type JoinTrackingQueryHandler struct {
	jobRepo      ports.JobRepository
	workerRepo   ports.WorkerRepository
	locationRepo ports.LocationRepository
	logger       *slog.Logger
}

// JoinTrackingResponse is the tracking read model.
// IsPending is true while the job awaits a worker; Worker and LastSample are
// populated only for assigned jobs, and LastSample only when the worker has
// reported a position.
type JoinTrackingResponse struct {
	JobID      kernel.UUID
	JobStatus  job.Status
	WorkerID   *kernel.UUID
	IsPending  bool
	Worker     *worker.Worker
	LastSample *location.Sample
}

// NewJoinTrackingQueryHandler creates a handler for tracking-view queries.
func NewJoinTrackingQueryHandler(
	jobRepo ports.JobRepository,
	workerRepo ports.WorkerRepository,
	locationRepo ports.LocationRepository,
	logger *slog.Logger,
) JoinTrackingQueryHandler {
	return JoinTrackingQueryHandler{
		jobRepo:      jobRepo,
		workerRepo:   workerRepo,
		locationRepo: locationRepo,
		logger:       logger.With("component", "join-tracking"),
	}
}

// Handle executes the query.
//
// The ownership check runs before any status branch so an unauthorized caller
// learns nothing about the job. For assigned jobs a missing worker profile is
// logged and tolerated; the tracking view still opens.
func (h JoinTrackingQueryHandler) Handle(ctx context.Context, query JoinTrackingQuery) (JoinTrackingResponse, error) {
	if err := query.Validate(); err != nil {
		return JoinTrackingResponse{}, err
	}

	aggregate, err := h.jobRepo.Get(ctx, query.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return JoinTrackingResponse{}, ErrTrackingJobNotFound
	}
	if err != nil {
		return JoinTrackingResponse{}, err
	}

	if !aggregate.UserID().IsEqual(query.UserID()) {
		return JoinTrackingResponse{}, ErrTrackingNotAuthorized
	}

	response := JoinTrackingResponse{
		JobID:     aggregate.ID(),
		JobStatus: aggregate.Status(),
		WorkerID:  aggregate.Worker(),
	}

	switch aggregate.Status() {
	case job.Pending:
		response.IsPending = true
		return response, nil
	case job.NoWorkersFound:
		return JoinTrackingResponse{}, ErrTrackingNoWorkersFound
	case job.Cancelled:
		return JoinTrackingResponse{}, ErrTrackingJobCancelled
	case job.Confirmed, job.InProgress, job.Completed:
		// fall through to the assigned-worker lookups below
	default:
		return JoinTrackingResponse{}, errs.NewValueIsInvalidError("status")
	}

	workerID := aggregate.Worker()
	if workerID == nil {
		return response, nil
	}

	workerAggregate, err := h.workerRepo.Get(ctx, *workerID)
	if err != nil {
		// An assigned job with no worker profile is a data inconsistency,
		// but the tracking view still opens without it.
		h.logger.Warn("worker assigned but profile not found",
			"job_id", aggregate.ID().String(),
			"worker_id", workerID.String())
		return response, nil
	}
	response.Worker = workerAggregate

	sample, err := h.locationRepo.GetLatest(ctx, *workerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return response, nil
	}
	if err != nil {
		return JoinTrackingResponse{}, err
	}
	response.LastSample = &sample

	return response, nil
}
