package ws

import (
	"encoding/json"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Envelope is the wire frame for every message in both directions:
// the event name plus its payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// parseUUID validates a required identifier field from an inbound payload.
func parseUUID(field string, value string) (kernel.UUID, error) {
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(field)
	}
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

type acceptJobPayload struct {
	JobID    string `json:"jobId"`
	WorkerID string `json:"workerId"`
}

func (p acceptJobPayload) parse() (kernel.UUID, kernel.UUID, error) {
	jobID, err := parseUUID("jobId", p.JobID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	workerID, err := parseUUID("workerId", p.WorkerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return jobID, workerID, nil
}

type declineJobPayload struct {
	JobID    string `json:"jobId"`
	WorkerID string `json:"workerId"`
	Reason   string `json:"reason"`
}

type updateLocationPayload struct {
	JobID    string   `json:"jobId"`
	WorkerID string   `json:"workerId"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

func (p updateLocationPayload) parse() (kernel.UUID, kernel.UUID, kernel.GeoPoint, error) {
	jobID, err := parseUUID("jobId", p.JobID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, err
	}
	workerID, err := parseUUID("workerId", p.WorkerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, err
	}
	if p.Lat == nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, errs.NewValueIsRequiredError("lat")
	}
	if p.Lng == nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, errs.NewValueIsRequiredError("lng")
	}
	point, err := kernel.NewGeoPoint(*p.Lat, *p.Lng)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, err
	}
	return jobID, workerID, point, nil
}

type workerHeartbeatPayload struct {
	WorkerID string   `json:"workerId"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

func (p workerHeartbeatPayload) parse() (kernel.UUID, *kernel.GeoPoint, error) {
	workerID, err := parseUUID("workerId", p.WorkerID)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	if p.Lat == nil || p.Lng == nil {
		return workerID, nil, nil
	}
	point, err := kernel.NewGeoPoint(*p.Lat, *p.Lng)
	if err != nil {
		return kernel.UUID{}, nil, err
	}
	return workerID, &point, nil
}

type joinJobTrackingPayload struct {
	JobID  string `json:"jobId"`
	UserID string `json:"userId"`
}

func (p joinJobTrackingPayload) parse() (kernel.UUID, kernel.UUID, error) {
	jobID, err := parseUUID("jobId", p.JobID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	userID, err := parseUUID("userId", p.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return jobID, userID, nil
}

type workerPayload struct {
	WorkerID string `json:"workerId"`
}

func (p workerPayload) parse() (kernel.UUID, error) {
	return parseUUID("workerId", p.WorkerID)
}
