package events

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobStatusChanged         EventType = "job_status_changed"
	EventJobDeleted               EventType = "job_deleted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// ActorFrom converts a service caller into event metadata.
func ActorFrom(actor domain.Actor) Actor {
	return Actor{UserID: actor.ID, Role: actor.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobStatusChangedPayload payload.
type JobStatusChangedPayload struct {
	EmployerID string           `json:"employer_id"`
	OldStatus  domain.JobStatus `json:"old_status"`
	NewStatus  domain.JobStatus `json:"new_status"`
}

// JobDeletedPayload payload.
type JobDeletedPayload struct {
	EmployerID string `json:"employer_id"`
	Title      string `json:"title"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	JobID     string                   `json:"job_id"`
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}
