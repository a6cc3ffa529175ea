package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	apidomain "github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer starts consuming with manual acks and the configured prefetch
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	deliveries, err := w.source.Consume(w.workerID, w.prefetchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)
	return deliveries, nil
}

// decodeDelivery parses and validates one delivery body
func decodeDelivery(delivery amqp.Delivery) (apidomain.ApplicationEvent, error) {
	var event apidomain.ApplicationEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		return event, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}

	// older publishers only set the routing key
	if event.Type == "" {
		event.Type = delivery.RoutingKey
	}
	if event.EventID == "" {
		event.EventID = delivery.MessageId
	}

	if err := domain.Validate(event); err != nil {
		return event, err
	}
	return event, nil
}

// startMessageDispatcher feeds valid deliveries to the pool. It reports true
// when the delivery channel was closed by the broker.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return false

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return true
			}

			event, err := decodeDelivery(delivery)
			if err != nil {
				w.logger.Error("Rejecting malformed event",
					slog.String("routing_key", delivery.RoutingKey),
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				// no requeue, the broker dead-letters it if configured
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			msg := &domain.EventMessage{Event: event, Delivery: delivery}

			select {
			case w.eventsChan <- msg:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching event")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return false
			}
		}
	}
}
