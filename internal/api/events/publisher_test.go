package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	routingKey  string
	messageID   string
	body        []byte
	contentType string
	ctxErr      error
	hasDeadline bool
	err         error
}

func (b *fakeBroker) PublishWithRetry(ctx context.Context, routingKey, messageID string, body []byte, contentType string) error {
	b.routingKey = routingKey
	b.messageID = messageID
	b.body = body
	b.contentType = contentType
	b.ctxErr = ctx.Err()
	_, b.hasDeadline = ctx.Deadline()
	return b.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() domain.ApplicationEvent {
	return domain.ApplicationEvent{
		EventID:        "evt-1",
		Type:           domain.EventApplicationStatusChanged,
		ApplicationID:  9,
		UserID:         1,
		JobID:          20,
		PreviousStatus: domain.ApplicationPending,
		NewStatus:      domain.ApplicationReviewing,
		ActorID:        2,
		OccurredAt:     time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestRabbitPublisher_Publish(t *testing.T) {
	broker := &fakeBroker{}
	p := NewRabbitPublisher(broker, time.Second, discard())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	assert.Equal(t, domain.EventApplicationStatusChanged, broker.routingKey)
	assert.Equal(t, "evt-1", broker.messageID)
	assert.Equal(t, "application/json", broker.contentType)
	assert.True(t, broker.hasDeadline)

	var decoded domain.ApplicationEvent
	require.NoError(t, json.Unmarshal(broker.body, &decoded))
	assert.Equal(t, sampleEvent(), decoded)
}

func TestRabbitPublisher_SurvivesCanceledRequest(t *testing.T) {
	broker := &fakeBroker{}
	p := NewRabbitPublisher(broker, time.Second, discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, sampleEvent()))
	assert.NoError(t, broker.ctxErr)
}

func TestRabbitPublisher_BrokerError(t *testing.T) {
	broker := &fakeBroker{err: errors.New("channel closed")}
	p := NewRabbitPublisher(broker, 0, discard())

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application.status_changed")
	assert.Contains(t, err.Error(), "channel closed")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), sampleEvent()))
	assert.NoError(t, Noop{Logger: discard()}.Publish(context.Background(), sampleEvent()))
}
