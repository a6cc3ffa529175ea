package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
)

const contentTypeJSON = "application/json"

// Broker is the part of the RabbitMQ client the publisher needs
type Broker interface {
	PublishWithRetry(ctx context.Context, routingKey string, messageID string, body []byte, contentType string) error
}

// RabbitPublisher sends application events to the exchange using the
// event type as routing key
type RabbitPublisher struct {
	broker  Broker
	timeout time.Duration
	logger  *slog.Logger
}

func NewRabbitPublisher(broker Broker, timeout time.Duration, logger *slog.Logger) *RabbitPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RabbitPublisher{broker: broker, timeout: timeout, logger: logger}
}

// Publish runs detached from the request so a client disconnect after
// commit does not drop the event.
func (p *RabbitPublisher) Publish(ctx context.Context, event domain.ApplicationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.broker.PublishWithRetry(pubCtx, event.Type, event.EventID, body, contentTypeJSON); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.Debug("Application event published",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
		slog.Int64("application_id", event.ApplicationID),
	)
	return nil
}

// Noop discards events; used when RabbitMQ is disabled
type Noop struct {
	Logger *slog.Logger
}

func (n Noop) Publish(_ context.Context, event domain.ApplicationEvent) error {
	if n.Logger != nil {
		n.Logger.Debug("Event dropped, broker disabled",
			slog.String("type", event.Type),
			slog.Int64("application_id", event.ApplicationID),
		)
	}
	return nil
}
