package domain

import (
	"fmt"
	"time"

	apidomain "github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventMessage is a decoded event together with the delivery to ack
type EventMessage struct {
	Event    apidomain.ApplicationEvent
	Delivery amqp.Delivery
}

// Validate rejects events that are missing the fields the history row needs
func Validate(e apidomain.ApplicationEvent) error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: eventId is required", ErrInvalidEvent)
	case !IsHandledEventType(e.Type):
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	case e.ApplicationID <= 0:
		return fmt.Errorf("%w: applicationId is required", ErrInvalidEvent)
	case e.NewStatus == "":
		return fmt.Errorf("%w: newStatus is required", ErrInvalidEvent)
	case e.OccurredAt.IsZero():
		return fmt.Errorf("%w: occurredAt is required", ErrInvalidEvent)
	}
	return nil
}

// HistoryEntry maps an event onto its application_status_histories row
func HistoryEntry(e apidomain.ApplicationEvent, recordedAt time.Time) *model.ApplicationStatusHistory {
	entry := &model.ApplicationStatusHistory{
		EventID:       e.EventID,
		ApplicationID: e.ApplicationID,
		UserID:        e.UserID,
		JobID:         e.JobID,
		EventType:     e.Type,
		NewStatus:     string(e.NewStatus),
		ActorID:       e.ActorID,
		OccurredAt:    e.OccurredAt,
		CreatedAt:     recordedAt,
	}
	if e.PreviousStatus != "" {
		prev := string(e.PreviousStatus)
		entry.PreviousStatus = &prev
	}
	return entry
}
