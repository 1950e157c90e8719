// Package http exposes the coordinator's operational REST surface: health,
// active tracking sessions and the administrative force-stop. The live
// protocol itself is served by the ws adapter.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// TrackingStopper force-stops the tracking session for a job, notifying the
// interested parties. Implemented by the ws gateway.
type TrackingStopper interface {
	StopTracking(jobID kernel.UUID) (tracking.Session, bool)
}

// Server implements the operational HTTP endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	getActiveSessionsHandler queries.GetActiveSessionsQueryHandler
	stopper                  TrackingStopper
}

// NewServer creates a new HTTP server with the required query handler and the
// tracking stopper hook.
func NewServer(
	getActiveSessionsHandler queries.GetActiveSessionsQueryHandler,
	stopper TrackingStopper,
) *Server {
	return &Server{
		getActiveSessionsHandler: getActiveSessionsHandler,
		stopper:                  stopper,
	}
}

// RegisterRoutes mounts the server's endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/tracking/sessions", s.GetTrackingSessions)
	e.DELETE("/api/v1/tracking/sessions/:jobId", s.DeleteTrackingSession)
}

// Error is the error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health is the response body of GET /health.
type Health struct {
	Status string `json:"status"`
}

// TrackingSession is the wire form of an active tracking session.
type TrackingSession struct {
	JobID      string    `json:"jobId"`
	WorkerID   string    `json:"workerId"`
	UserID     string    `json:"userId"`
	ConnID     string    `json:"connId"`
	LastUpdate time.Time `json:"lastUpdate"`
}

func toTrackingSession(session tracking.Session) TrackingSession {
	return TrackingSession{
		JobID:      session.JobID.String(),
		WorkerID:   session.WorkerID.String(),
		UserID:     session.UserID.String(),
		ConnID:     session.ConnID,
		LastUpdate: session.LastUpdate,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Health{Status: "ok"})
}

// GetTrackingSessions handles GET /api/v1/tracking/sessions - lists every
// active tracking session.
func (s *Server) GetTrackingSessions(ctx echo.Context) error {
	query := queries.NewGetActiveSessionsQuery()

	sessions, err := s.getActiveSessionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve tracking sessions",
		})
	}

	response := make([]TrackingSession, len(sessions))
	for i, session := range sessions {
		response[i] = toTrackingSession(session)
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteTrackingSession handles DELETE /api/v1/tracking/sessions/:jobId -
// force-stops tracking for a job.
func (s *Server) DeleteTrackingSession(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid job ID",
		})
	}

	session, ok := s.stopper.StopTracking(jobID)
	if !ok {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No active tracking session for job",
		})
	}

	return ctx.JSON(http.StatusOK, toTrackingSession(session))
}
