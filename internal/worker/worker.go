package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliverySource is the consuming side of the RabbitMQ client
type DeliverySource interface {
	Consume(consumerTag string, prefetchCount int) (<-chan amqp.Delivery, error)
}

// HistoryStore persists application status history rows
type HistoryStore interface {
	RecordStatusChange(ctx context.Context, entry *model.ApplicationStatusHistory) (bool, error)
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Store         HistoryStore
	Source        DeliverySource
	Concurrency   int
	PrefetchCount int
	EventTimeout  time.Duration
}

// Worker consumes application events and records the status history
type Worker struct {
	logger        *slog.Logger
	store         HistoryStore
	source        DeliverySource
	concurrency   int
	prefetchCount int
	eventTimeout  time.Duration
	workerID      string
	now           func() time.Time

	eventsChan chan *domain.EventMessage
	wg         sync.WaitGroup
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := max(cfg.Concurrency, 1)
	return &Worker{
		logger:        cfg.Logger,
		store:         cfg.Store,
		source:        cfg.Source,
		concurrency:   concurrency,
		prefetchCount: cfg.PrefetchCount,
		eventTimeout:  cfg.EventTimeout,
		workerID:      "history-worker-" + uuid.NewString(),
		now:           time.Now,
		eventsChan:    make(chan *domain.EventMessage, concurrency),
		stopChan:      make(chan struct{}),
	}
}

// ErrDeliveriesClosed is returned by Start when the broker stops delivering
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Start consumes until ctx is canceled or the broker closes the channel
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("event_timeout", w.eventTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)

	if closed := w.startMessageDispatcher(ctx, deliveries); closed {
		return ErrDeliveriesClosed
	}
	return nil
}

// Stop signals the pool and waits for in-flight events to finish
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
