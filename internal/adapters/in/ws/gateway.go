package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

// Handlers bundles the command and query handlers the gateway dispatches to.
type Handlers struct {
	AcceptJob      commands.AcceptJobCommandHandler
	DeclineJob     commands.DeclineJobCommandHandler
	StartJob       commands.StartJobCommandHandler
	CompleteJob    commands.CompleteJobCommandHandler
	UpdateLocation commands.UpdateLocationCommandHandler
	Heartbeat      commands.HeartbeatCommandHandler
	GoLive         commands.GoLiveCommandHandler
	GoOffline      commands.GoOfflineCommandHandler
	JoinTracking   queries.JoinTrackingQueryHandler
}

// Gateway is the protocol-facing event dispatcher. Inbound messages are
// validated against a declared payload schema, routed through the dispatch
// table and converted to outbound events or structured error events; nothing
// ever throws past this boundary.
//
// Dispatch is serialized by a mutex, giving the single-logical-event-loop
// ordering guarantee: for any one job, events are processed in arrival order,
// one at a time to completion. The accept race between connections is not
// ordered here; the repository's conditional update arbitrates it.
type Gateway struct {
	mu sync.Mutex

	rooms    *Rooms
	sessions *tracking.Store
	handlers Handlers
	logger   *slog.Logger

	dispatch map[string]func(ctx context.Context, conn Conn, data json.RawMessage)
}

// NewGateway creates the event gateway with its dispatch table.
func NewGateway(rooms *Rooms, sessions *tracking.Store, handlers Handlers, logger *slog.Logger) *Gateway {
	g := &Gateway{
		rooms:    rooms,
		sessions: sessions,
		handlers: handlers,
		logger:   logger.With("component", "ws-gateway"),
	}

	g.dispatch = map[string]func(ctx context.Context, conn Conn, data json.RawMessage){
		EventAcceptJob:       g.handleAcceptJob,
		EventDeclineJob:      g.handleDeclineJob,
		EventStartJob:        g.handleStartJob,
		EventCompleteJob:     g.handleCompleteJob,
		EventUpdateLocation:  g.handleUpdateLocation,
		EventWorkerHeartbeat: g.handleWorkerHeartbeat,
		EventJoinJobTracking: g.handleJoinJobTracking,
		EventGoLive:          g.handleGoLive,
		EventGoOffline:       g.handleGoOffline,
	}

	return g
}

// HandleConnect registers a new connection. A connection presenting a user
// identifier joins its user room immediately so job_accepted and location
// relay events reach it without an explicit join.
func (g *Gateway) HandleConnect(conn Conn, userID string, workerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rooms.Register(conn)

	if userID != "" {
		id, err := kernel.UUIDFromString(userID)
		if err != nil {
			g.logger.Warn("ignoring invalid userId on connect", "conn_id", conn.ID(), "user_id", userID)
		} else {
			g.rooms.Join(UserRoom(id), conn)
		}
	}

	g.logger.Info("connection established", "conn_id", conn.ID(), "user_id", userID, "worker_id", workerID)
}

// HandleDisconnect removes every tracking session owned by the closing
// connection and notifies each affected job's user room, then drops the
// connection from all rooms. Cleanup is best-effort; job state mutations
// already persisted are not rolled back.
func (g *Gateway) HandleDisconnect(conn Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, session := range g.sessions.RemoveByConn(conn.ID()) {
		g.logger.Info("tracking stopped on disconnect", "job_id", session.JobID.String())
		g.rooms.Emit(UserRoom(session.UserID), EventTrackingStopped, TrackingStoppedEvent{
			JobID:   session.JobID.String(),
			Message: "Worker disconnected. Location tracking stopped.",
		})
	}

	g.rooms.Unregister(conn.ID())
}

// Dispatch routes one inbound message. Events are handled one at a time to
// completion before the next begins.
func (g *Gateway) Dispatch(ctx context.Context, conn Conn, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Event == "" {
		g.logger.Warn("malformed message", "conn_id", conn.ID())
		conn.Emit(EventJobError, JobErrorEvent{Message: "Invalid message format"})
		return
	}

	handler, ok := g.dispatch[envelope.Event]
	if !ok {
		g.logger.Warn("unknown event", "event", envelope.Event, "conn_id", conn.ID())
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	handler(ctx, conn, envelope.Data)
}

// StopTracking forcibly destroys the tracking session for a job and notifies
// the user room. Administrative hook for the matching subsystem and tests.
func (g *Gateway) StopTracking(jobID kernel.UUID) (tracking.Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions.Remove(jobID)
	if !ok {
		return tracking.Session{}, false
	}

	g.logger.Info("tracking stopped by request", "job_id", jobID.String())
	g.rooms.Emit(UserRoom(session.UserID), EventTrackingStopped, TrackingStoppedEvent{
		JobID:   jobID.String(),
		Message: "Location tracking stopped.",
	})
	return session, true
}

// ReapIdleSessions destroys sessions without updates since cutoff, notifying
// each affected user room. Returns the number of sessions reaped.
func (g *Gateway) ReapIdleSessions(cutoff time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	reaped := g.sessions.ReapIdle(cutoff)
	for _, session := range reaped {
		g.logger.Info("tracking stopped: session idle", "job_id", session.JobID.String())
		g.rooms.Emit(UserRoom(session.UserID), EventTrackingStopped, TrackingStoppedEvent{
			JobID:   session.JobID.String(),
			Message: "Location tracking timed out due to inactivity.",
		})
	}
	return len(reaped)
}

func (g *Gateway) handleAcceptJob(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload acceptJobPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to accept job"})
		return
	}
	jobID, workerID, err := payload.parse()
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to accept job"})
		return
	}

	cmd, err := commands.NewAcceptJobCommand(jobID, workerID, conn.ID())
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to accept job"})
		return
	}

	result, err := g.handlers.AcceptJob.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrJobNotFound):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job not found"})
		return
	case errors.Is(err, commands.ErrJobAlreadyAccepted):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job already accepted by another worker"})
		return
	case errors.Is(err, commands.ErrJobNoLongerAvailable):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job is no longer available"})
		return
	case errors.Is(err, commands.ErrWorkerUnavailable):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Worker not available or inactive"})
		return
	case err != nil:
		g.logger.Error("accept job failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to accept job"})
		return
	}

	g.rooms.Join(JobRoom(jobID), conn)

	view := newJobView(result.Job)
	g.rooms.Emit(UserRoom(result.Job.UserID()), EventJobAccepted, JobAcceptedEvent{
		Job:             view,
		Worker:          newWorkerView(result.Worker),
		TrackingEnabled: true,
	})
	conn.Emit(EventJobAcceptedSuccess, JobAcceptedSuccessEvent{
		Job:             view,
		Message:         "Job accepted successfully! Start sharing your location.",
		TrackingEnabled: true,
	})
	g.rooms.EmitAll(EventJobUnavailable, JobUnavailableEvent{
		JobID:   jobID.String(),
		Message: "This job has been accepted by another worker",
	})
}

func (g *Gateway) handleDeclineJob(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload declineJobPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to decline job"})
		return
	}
	jobID, err := parseUUID("jobId", payload.JobID)
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to decline job"})
		return
	}
	workerID, err := parseUUID("workerId", payload.WorkerID)
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to decline job"})
		return
	}

	cmd, err := commands.NewDeclineJobCommand(jobID, workerID, payload.Reason)
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to decline job"})
		return
	}

	if err := g.handlers.DeclineJob.Handle(ctx, cmd); err != nil {
		g.logger.Error("decline job failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to decline job"})
		return
	}

	conn.Emit(EventJobDeclined, JobDeclinedEvent{
		JobID:   jobID.String(),
		Message: "Job declined successfully",
	})
}

func (g *Gateway) handleStartJob(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload acceptJobPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to start job"})
		return
	}
	jobID, workerID, err := payload.parse()
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to start job"})
		return
	}

	cmd, err := commands.NewStartJobCommand(jobID, workerID)
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to start job"})
		return
	}

	result, err := g.handlers.StartJob.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrJobNotFoundOrUnauthorized):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job not found or unauthorized"})
		return
	case errors.Is(err, commands.ErrJobNotConfirmed):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job must be confirmed before starting"})
		return
	case err != nil:
		g.logger.Error("start job failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to start job"})
		return
	}

	view := newJobView(result.Job)
	g.rooms.Emit(UserRoom(result.Job.UserID()), EventJobStarted, JobStartedEvent{
		Job:     view,
		Message: "Worker has started the job",
	})
	conn.Emit(EventJobStartedSuccess, JobStartedSuccessEvent{
		Job:     view,
		Message: "Job started successfully!",
	})
}

func (g *Gateway) handleCompleteJob(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload acceptJobPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to complete job"})
		return
	}
	jobID, workerID, err := payload.parse()
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to complete job"})
		return
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, workerID)
	if err != nil {
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to complete job"})
		return
	}

	result, err := g.handlers.CompleteJob.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrJobNotFoundOrUnauthorized):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job not found or unauthorized"})
		return
	case errors.Is(err, commands.ErrJobNotInProgress):
		conn.Emit(EventJobError, JobErrorEvent{Message: "Job must be in progress before completing"})
		return
	case err != nil:
		g.logger.Error("complete job failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventJobError, JobErrorEvent{Message: "Failed to complete job"})
		return
	}

	view := newJobView(result.Job)
	g.rooms.Emit(UserRoom(result.Job.UserID()), EventJobCompleted, JobCompletedEvent{
		Job:             view,
		Message:         "Job has been completed successfully!",
		TrackingStopped: true,
	})
	conn.Emit(EventJobCompletedSuccess, JobCompletedSuccessEvent{
		Job:             view,
		Message:         "Job completed successfully! Location tracking stopped.",
		TrackingStopped: true,
	})
}

func (g *Gateway) handleUpdateLocation(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload updateLocationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventLocationError, LocationErrorEvent{Message: "Failed to update location"})
		return
	}
	jobID, workerID, point, err := payload.parse()
	if err != nil {
		conn.Emit(EventLocationError, LocationErrorEvent{Message: "Failed to update location"})
		return
	}

	cmd, err := commands.NewUpdateLocationCommand(jobID, workerID, point)
	if err != nil {
		conn.Emit(EventLocationError, LocationErrorEvent{Message: "Failed to update location"})
		return
	}

	result, err := g.handlers.UpdateLocation.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrTrackingUnauthorized):
		conn.Emit(EventLocationError, LocationErrorEvent{
			Message: "Not authorized to update location for this job",
		})
		return
	case err != nil:
		g.logger.Error("update location failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventLocationError, LocationErrorEvent{Message: "Failed to update location"})
		return
	}

	timestamp := result.RecordedAt.Format(time.RFC3339)
	g.rooms.Emit(UserRoom(result.UserID), EventWorkerLocationUpdate, WorkerLocationUpdateEvent{
		JobID:     jobID.String(),
		WorkerID:  workerID.String(),
		Lat:       point.Lat(),
		Lng:       point.Lng(),
		Timestamp: timestamp,
	})
	conn.Emit(EventLocationUpdated, LocationUpdatedEvent{
		Message:   "Location updated successfully",
		Timestamp: timestamp,
	})
}

func (g *Gateway) handleWorkerHeartbeat(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload workerHeartbeatPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("malformed heartbeat", "conn_id", conn.ID())
		return
	}
	workerID, point, err := payload.parse()
	if err != nil {
		g.logger.Warn("malformed heartbeat", "conn_id", conn.ID(), "error", err)
		return
	}

	cmd, err := commands.NewHeartbeatCommand(workerID, point)
	if err != nil {
		g.logger.Warn("malformed heartbeat", "conn_id", conn.ID(), "error", err)
		return
	}

	// Heartbeats are fire-and-forget; failures are logged, never echoed.
	if err := g.handlers.Heartbeat.Handle(ctx, cmd); err != nil {
		g.logger.Warn("heartbeat failed", "worker_id", workerID.String(), "error", err)
	}
}

func (g *Gateway) handleJoinJobTracking(ctx context.Context, conn Conn, data json.RawMessage) {
	internalError := TrackingErrorEvent{
		Message: "Failed to start job tracking",
		Code:    CodeInternalError,
		Details: "An internal error occurred. Please try again.",
	}

	var payload joinJobTrackingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		conn.Emit(EventTrackingError, internalError)
		return
	}
	jobID, userID, err := payload.parse()
	if err != nil {
		conn.Emit(EventTrackingError, internalError)
		return
	}

	query, err := queries.NewJoinTrackingQuery(jobID, userID)
	if err != nil {
		conn.Emit(EventTrackingError, internalError)
		return
	}

	response, err := g.handlers.JoinTracking.Handle(ctx, query)
	switch {
	case errors.Is(err, queries.ErrTrackingJobNotFound):
		conn.Emit(EventTrackingError, TrackingErrorEvent{
			Message: "Job not found",
			Code:    CodeJobNotFound,
			Details: "The requested job does not exist in our system.",
		})
		return
	case errors.Is(err, queries.ErrTrackingNotAuthorized):
		conn.Emit(EventTrackingError, TrackingErrorEvent{
			Message: "Not authorized to track this job",
			Code:    CodeUnauthorized,
			Details: "You can only track jobs that you created.",
		})
		return
	case errors.Is(err, queries.ErrTrackingNoWorkersFound):
		conn.Emit(EventTrackingError, TrackingErrorEvent{
			Message: "No workers available",
			Code:    CodeNoWorkersFound,
			Details: "We couldn't find any available workers in your area. Please try again later.",
		})
		return
	case errors.Is(err, queries.ErrTrackingJobCancelled):
		conn.Emit(EventTrackingError, TrackingErrorEvent{
			Message: "Job was cancelled",
			Code:    CodeJobCancelled,
			Details: "This job has been cancelled and cannot be tracked.",
		})
		return
	case err != nil:
		g.logger.Error("join tracking failed", "job_id", jobID.String(), "error", err)
		conn.Emit(EventTrackingError, internalError)
		return
	}

	// The caller follows the job from here on, even while it is pending.
	g.rooms.Join(JobRoom(jobID), conn)
	g.rooms.Join(UserRoom(userID), conn)

	if response.IsPending {
		conn.Emit(EventTrackingStarted, TrackingStartedEvent{
			JobID:     jobID.String(),
			Message:   "Job is pending. Waiting for a worker to accept your request.",
			JobStatus: response.JobStatus.String(),
			WorkerID:  nil,
			IsPending: true,
		})
		return
	}

	var workerIDStr *string
	if response.WorkerID != nil {
		s := response.WorkerID.String()
		workerIDStr = &s
	}

	if response.Worker != nil {
		conn.Emit(EventWorkerAssigned, WorkerAssignedEvent{
			JobID:            jobID.String(),
			WorkerID:         response.Worker.ID().String(),
			WorkerName:       response.Worker.FullName(),
			WorkerPhone:      response.Worker.PhoneNumber(),
			WorkerAvatar:     response.Worker.AvatarURL(),
			WorkerExperience: response.Worker.ExperienceYears(),
		})
	}

	if response.LastSample != nil {
		conn.Emit(EventWorkerLocationUpdate, WorkerLocationUpdateEvent{
			JobID:     jobID.String(),
			WorkerID:  response.LastSample.WorkerID().String(),
			Lat:       response.LastSample.Point().Lat(),
			Lng:       response.LastSample.Point().Lng(),
			Timestamp: response.LastSample.RecordedAt().Format(time.RFC3339),
			Status:    response.JobStatus.String(),
		})
	}

	conn.Emit(EventTrackingStarted, TrackingStartedEvent{
		JobID:     jobID.String(),
		Message:   "Job tracking started successfully",
		JobStatus: response.JobStatus.String(),
		WorkerID:  workerIDStr,
		IsPending: false,
	})
}

func (g *Gateway) handleGoLive(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload workerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("malformed go_live", "conn_id", conn.ID())
		return
	}
	workerID, err := payload.parse()
	if err != nil {
		g.logger.Warn("malformed go_live", "conn_id", conn.ID(), "error", err)
		return
	}

	g.rooms.Join(BroadcastRoom, conn)

	cmd, err := commands.NewGoLiveCommand(workerID)
	if err != nil {
		g.logger.Warn("malformed go_live", "conn_id", conn.ID(), "error", err)
		return
	}
	if err := g.handlers.GoLive.Handle(ctx, cmd); err != nil {
		g.logger.Warn("go_live presence update failed", "worker_id", workerID.String(), "error", err)
	}
}

func (g *Gateway) handleGoOffline(ctx context.Context, conn Conn, data json.RawMessage) {
	var payload workerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("malformed go_offline", "conn_id", conn.ID())
		return
	}
	workerID, err := payload.parse()
	if err != nil {
		g.logger.Warn("malformed go_offline", "conn_id", conn.ID(), "error", err)
		return
	}

	g.rooms.Leave(BroadcastRoom, conn.ID())

	cmd, err := commands.NewGoOfflineCommand(workerID)
	if err != nil {
		g.logger.Warn("malformed go_offline", "conn_id", conn.ID(), "error", err)
		return
	}
	if err := g.handlers.GoOffline.Handle(ctx, cmd); err != nil {
		g.logger.Warn("go_offline presence update failed", "worker_id", workerID.String(), "error", err)
	}
}
