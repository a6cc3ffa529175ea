package worker

import (
	"context"
	"log/slog"

	"github.com/highcastle01/WSD-Assignment-03/internal/worker/domain"
)

// processEvent records one status change. A redelivered event that was
// already stored is a success.
func (w *Worker) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	event := msg.Event

	eventCtx := ctx
	if w.eventTimeout > 0 {
		var cancel context.CancelFunc
		eventCtx, cancel = context.WithTimeout(ctx, w.eventTimeout)
		defer cancel()
	}

	entry := domain.HistoryEntry(event, w.now())

	inserted, err := w.store.RecordStatusChange(eventCtx, entry)
	if err != nil {
		return domain.NewRetryableError(err)
	}

	if !inserted {
		w.logger.Info("Duplicate event ignored",
			slog.String("event_id", event.EventID),
			slog.Bool("redelivered", msg.Delivery.Redelivered),
		)
		return nil
	}

	w.logger.Info("Status change recorded",
		slog.String("event_id", event.EventID),
		slog.String("type", event.Type),
		slog.Int64("application_id", event.ApplicationID),
		slog.String("new_status", string(event.NewStatus)),
	)
	return nil
}
