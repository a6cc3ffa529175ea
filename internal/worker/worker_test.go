package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	apidomain "github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settlement is how a delivery was finished
type settlement struct {
	acked   bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	settled map[uint64]settlement
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{settled: map[uint64]settlement{}}
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled[tag] = settlement{acked: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled[tag] = settlement{requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) get(tag uint64) (settlement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.settled[tag]
	return s, ok
}

func (a *fakeAcknowledger) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.settled)
}

type memHistory struct {
	mu      sync.Mutex
	entries map[string]*model.ApplicationStatusHistory
	err     error
}

func (m *memHistory) RecordStatusChange(_ context.Context, entry *model.ApplicationStatusHistory) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.entries[entry.EventID]; ok {
		return false, nil
	}
	m.entries[entry.EventID] = entry
	return true, nil
}

type chanSource struct {
	ch  chan amqp.Delivery
	err error
}

func (s *chanSource) Consume(string, int) (<-chan amqp.Delivery, error) {
	return s.ch, s.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var occurred = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func statusEvent(id string) apidomain.ApplicationEvent {
	return apidomain.ApplicationEvent{
		EventID:        id,
		Type:           apidomain.EventApplicationStatusChanged,
		ApplicationID:  9,
		UserID:         1,
		JobID:          20,
		PreviousStatus: apidomain.ApplicationPending,
		NewStatus:      apidomain.ApplicationReviewing,
		ActorID:        2,
		OccurredAt:     occurred,
	}
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, body any) amqp.Delivery {
	t.Helper()
	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: raw}
}

func TestDecodeDelivery(t *testing.T) {
	ack := newFakeAcknowledger()

	t.Run("valid", func(t *testing.T) {
		event, err := decodeDelivery(delivery(t, ack, 1, statusEvent("evt-1")))
		require.NoError(t, err)
		assert.Equal(t, statusEvent("evt-1"), event)
	})

	t.Run("type and id fall back to delivery headers", func(t *testing.T) {
		e := statusEvent("")
		e.Type = ""
		d := delivery(t, ack, 1, e)
		d.RoutingKey = apidomain.EventApplicationWithdrawn
		d.MessageId = "evt-from-header"

		event, err := decodeDelivery(d)
		require.NoError(t, err)
		assert.Equal(t, apidomain.EventApplicationWithdrawn, event.Type)
		assert.Equal(t, "evt-from-header", event.EventID)
	})

	tests := []struct {
		name    string
		body    any
		wantErr error
	}{
		{name: "not json", body: []byte("{"), wantErr: domain.ErrInvalidEvent},
		{name: "missing id", body: statusEvent(""), wantErr: domain.ErrInvalidEvent},
		{name: "unknown type", body: func() apidomain.ApplicationEvent {
			e := statusEvent("evt-2")
			e.Type = "job.created"
			return e
		}(), wantErr: domain.ErrUnknownEventType},
		{name: "missing application", body: func() apidomain.ApplicationEvent {
			e := statusEvent("evt-3")
			e.ApplicationID = 0
			return e
		}(), wantErr: domain.ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDelivery(delivery(t, ack, 1, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestShouldRequeue(t *testing.T) {
	assert.True(t, shouldRequeue(domain.NewRetryableError(errors.New("connection reset"))))
	assert.False(t, shouldRequeue(domain.ErrInvalidEvent))
	assert.False(t, shouldRequeue(domain.ErrUnknownEventType))
	assert.False(t, shouldRequeue(errors.New("unknown")))
}

func TestHistoryEntry(t *testing.T) {
	recorded := occurred.Add(time.Second)

	entry := domain.HistoryEntry(statusEvent("evt-1"), recorded)
	assert.Equal(t, "evt-1", entry.EventID)
	require.NotNil(t, entry.PreviousStatus)
	assert.Equal(t, "PENDING", *entry.PreviousStatus)
	assert.Equal(t, "REVIEWING", entry.NewStatus)
	assert.Equal(t, recorded, entry.CreatedAt)

	submitted := statusEvent("evt-2")
	submitted.Type = apidomain.EventApplicationSubmitted
	submitted.PreviousStatus = ""
	assert.Nil(t, domain.HistoryEntry(submitted, recorded).PreviousStatus)
}

func TestWorker_RecordsEachEventOnce(t *testing.T) {
	ack := newFakeAcknowledger()
	store := &memHistory{entries: map[string]*model.ApplicationStatusHistory{}}
	source := &chanSource{ch: make(chan amqp.Delivery)}

	w := NewWorker(&Config{
		Logger:        discard(),
		Store:         store,
		Source:        source,
		Concurrency:   2,
		PrefetchCount: 4,
		EventTimeout:  time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	source.ch <- delivery(t, ack, 1, statusEvent("evt-1"))
	source.ch <- delivery(t, ack, 2, statusEvent("evt-1")) // redelivery
	source.ch <- delivery(t, ack, 3, []byte("not json"))

	require.Eventually(t, func() bool { return ack.count() == 3 }, 2*time.Second, 10*time.Millisecond)

	for _, tag := range []uint64{1, 2} {
		s, _ := ack.get(tag)
		assert.True(t, s.acked, "tag %d", tag)
	}
	s, _ := ack.get(3)
	assert.False(t, s.acked)
	assert.False(t, s.requeue)
	assert.Len(t, store.entries, 1)

	close(source.ch)
	assert.ErrorIs(t, <-done, ErrDeliveriesClosed)
	w.Stop()
}

func TestWorker_StoreFailureRequeues(t *testing.T) {
	ack := newFakeAcknowledger()
	store := &memHistory{entries: map[string]*model.ApplicationStatusHistory{}, err: errors.New("connection refused")}
	source := &chanSource{ch: make(chan amqp.Delivery)}

	w := NewWorker(&Config{Logger: discard(), Store: store, Source: source, Concurrency: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	source.ch <- delivery(t, ack, 7, statusEvent("evt-7"))
	require.Eventually(t, func() bool { return ack.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	s, _ := ack.get(7)
	assert.False(t, s.acked)
	assert.True(t, s.requeue)

	cancel()
	assert.NoError(t, <-done)
	w.Stop()
}

func TestWorker_ConsumeError(t *testing.T) {
	w := NewWorker(&Config{Logger: discard(), Source: &chanSource{err: errors.New("not connected to RabbitMQ")}})
	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}
