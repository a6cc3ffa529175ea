package domain

import "time"

// Routing keys of application lifecycle events
const (
	EventApplicationSubmitted          = "application.submitted"
	EventApplicationStatusChanged      = "application.status_changed"
	EventApplicationWithdrawn          = "application.withdrawn"
	EventApplicationInterviewScheduled = "application.interview_scheduled"
)

// ApplicationEvent is published after an application changes state
type ApplicationEvent struct {
	EventID        string            `json:"eventId"`
	Type           string            `json:"type"`
	ApplicationID  int64             `json:"applicationId"`
	UserID         int64             `json:"userId"`
	JobID          int64             `json:"jobId"`
	PreviousStatus ApplicationStatus `json:"previousStatus,omitempty"`
	NewStatus      ApplicationStatus `json:"newStatus"`
	ActorID        int64             `json:"actorId"`
	OccurredAt     time.Time         `json:"occurredAt"`
}
