package ws

import (
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/worker"
)

// Inbound event names.
const (
	EventAcceptJob       = "accept_job"
	EventDeclineJob      = "decline_job"
	EventStartJob        = "start_job"
	EventCompleteJob     = "complete_job"
	EventUpdateLocation  = "update_location"
	EventWorkerHeartbeat = "worker_heartbeat"
	EventJoinJobTracking = "join_job_tracking"
	EventGoLive          = "go_live"
	EventGoOffline       = "go_offline"
)

// Outbound event names.
const (
	EventJobError             = "job_error"
	EventJobAccepted          = "job_accepted"
	EventJobAcceptedSuccess   = "job_accepted_success"
	EventJobUnavailable       = "job_unavailable"
	EventJobDeclined          = "job_declined"
	EventLocationError        = "location_error"
	EventLocationUpdated      = "location_updated"
	EventWorkerLocationUpdate = "worker_location_update"
	EventJobStarted           = "job_started"
	EventJobStartedSuccess    = "job_started_success"
	EventJobCompleted         = "job_completed"
	EventJobCompletedSuccess  = "job_completed_success"
	EventTrackingStarted      = "tracking_started"
	EventTrackingError        = "tracking_error"
	EventWorkerAssigned       = "worker_assigned"
	EventTrackingStopped      = "tracking_stopped"
)

// Error codes surfaced in tracking_error events.
const (
	CodeJobNotFound    = "JOB_NOT_FOUND"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNoWorkersFound = "NO_WORKERS_FOUND"
	CodeJobCancelled   = "JOB_CANCELLED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// JobView is the job object as sent on the wire.
type JobView struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	WorkerID    *string `json:"workerId"`
	Status      string  `json:"status"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
}

// WorkerView is the worker's public profile as sent in job_accepted.
type WorkerView struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PhoneNumber     string `json:"phoneNumber"`
	ExperienceYears int    `json:"experienceYears"`
}

func newJobView(aggregate *job.Job) JobView {
	view := JobView{
		ID:          aggregate.ID().String(),
		UserID:      aggregate.UserID().String(),
		Status:      aggregate.Status().String(),
		Address:     aggregate.Address(),
		Description: aggregate.Description(),
		CreatedAt:   aggregate.CreatedAt().UTC().Format(time.RFC3339),
	}
	if workerID := aggregate.Worker(); workerID != nil {
		s := workerID.String()
		view.WorkerID = &s
	}
	return view
}

func newWorkerView(aggregate *worker.Worker) WorkerView {
	return WorkerView{
		ID:              aggregate.ID().String(),
		FirstName:       aggregate.FirstName(),
		LastName:        aggregate.LastName(),
		PhoneNumber:     aggregate.PhoneNumber(),
		ExperienceYears: aggregate.ExperienceYears(),
	}
}

// Outbound event payloads.

type JobErrorEvent struct {
	Message string `json:"message"`
}

type JobAcceptedEvent struct {
	Job             JobView    `json:"job"`
	Worker          WorkerView `json:"worker"`
	TrackingEnabled bool       `json:"trackingEnabled"`
}

type JobAcceptedSuccessEvent struct {
	Job             JobView `json:"job"`
	Message         string  `json:"message"`
	TrackingEnabled bool    `json:"trackingEnabled"`
}

type JobUnavailableEvent struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

type JobDeclinedEvent struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

type LocationErrorEvent struct {
	Message string `json:"message"`
}

type LocationUpdatedEvent struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type WorkerLocationUpdateEvent struct {
	JobID     string  `json:"jobId"`
	WorkerID  string  `json:"workerId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status,omitempty"`
}

type JobStartedEvent struct {
	Job     JobView `json:"job"`
	Message string  `json:"message"`
}

type JobStartedSuccessEvent struct {
	Job     JobView `json:"job"`
	Message string  `json:"message"`
}

type JobCompletedEvent struct {
	Job             JobView `json:"job"`
	Message         string  `json:"message"`
	TrackingStopped bool    `json:"trackingStopped"`
}

type JobCompletedSuccessEvent struct {
	Job             JobView `json:"job"`
	Message         string  `json:"message"`
	TrackingStopped bool    `json:"trackingStopped"`
}

type TrackingStartedEvent struct {
	JobID     string  `json:"jobId"`
	Message   string  `json:"message"`
	JobStatus string  `json:"jobStatus"`
	WorkerID  *string `json:"workerId"`
	IsPending bool    `json:"isPending"`
}

type TrackingErrorEvent struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

type WorkerAssignedEvent struct {
	JobID            string `json:"jobId"`
	WorkerID         string `json:"workerId"`
	WorkerName       string `json:"workerName"`
	WorkerPhone      string `json:"workerPhone"`
	WorkerAvatar     string `json:"workerAvatar"`
	WorkerExperience int    `json:"workerExperience"`
}

type TrackingStoppedEvent struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}
