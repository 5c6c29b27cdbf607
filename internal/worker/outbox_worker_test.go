package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"club-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOutboxRepo struct {
	PickBatchFunc  func(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error)
	MarkSentFunc   func(ctx context.Context, id uuid.UUID) error
	MarkFailedFunc func(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error
}

func (m *mockOutboxRepo) Enqueue(ctx context.Context, msg *entity.OutboxMessage) error { return nil }

func (m *mockOutboxRepo) PickBatch(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
	if m.PickBatchFunc != nil {
		return m.PickBatchFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockOutboxRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, id)
	}
	return nil
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, lastError, nextAttempt)
	}
	return nil
}

type mockPublisher struct {
	PublishFunc func(ctx context.Context, eventType, key string, payload []byte) error
	published   []string
}

func (m *mockPublisher) Publish(ctx context.Context, eventType, key string, payload []byte) error {
	m.published = append(m.published, eventType)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, eventType, key, payload)
	}
	return nil
}

func (m *mockPublisher) Close() {}

func pendingMessage(t *testing.T, eventType string, attempts int) entity.OutboxMessage {
	t.Helper()
	msg, err := entity.NewOutboxMessage(eventType, 1, uuid.NewString(), map[string]string{"k": "v"})
	require.NoError(t, err)
	msg.Attempts = attempts
	return *msg
}

func TestDrainPublishesAndMarksSent(t *testing.T) {
	first := pendingMessage(t, "booking.created", 0)
	second := pendingMessage(t, "booking.cancelled", 0)

	var sent []uuid.UUID
	repo := &mockOutboxRepo{
		PickBatchFunc: func(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
			return []entity.OutboxMessage{first, second}, nil
		},
		MarkSentFunc: func(ctx context.Context, id uuid.UUID) error {
			sent = append(sent, id)
			return nil
		},
	}
	publisher := &mockPublisher{}
	worker := NewOutboxWorker(repo, publisher, time.Second, 50, zap.NewNop())

	worker.Drain(context.Background())

	assert.Equal(t, []string{"booking.created", "booking.cancelled"}, publisher.published)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, sent)
}

func TestDrainMarksFailedWithBackoffOnPublishError(t *testing.T) {
	msg := pendingMessage(t, "booking.created", 2)

	var failedID uuid.UUID
	var failedErr string
	var nextAttempt time.Time
	repo := &mockOutboxRepo{
		PickBatchFunc: func(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
			return []entity.OutboxMessage{msg}, nil
		},
		MarkSentFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("MarkSent must not be called for a failed publish")
			return nil
		},
		MarkFailedFunc: func(ctx context.Context, id uuid.UUID, lastError string, next time.Time) error {
			failedID = id
			failedErr = lastError
			nextAttempt = next
			return nil
		},
	}
	publisher := &mockPublisher{
		PublishFunc: func(ctx context.Context, eventType, key string, payload []byte) error {
			return errors.New("broker unavailable")
		},
	}
	worker := NewOutboxWorker(repo, publisher, time.Second, 50, zap.NewNop())

	before := time.Now()
	worker.Drain(context.Background())

	assert.Equal(t, msg.ID, failedID)
	assert.Contains(t, failedErr, "broker unavailable")
	// Two prior attempts double the 10s base delay twice.
	assert.WithinDuration(t, before.Add(40*time.Second), nextAttempt, 5*time.Second)
}

func TestDrainContinuesPastFailures(t *testing.T) {
	bad := pendingMessage(t, "booking.created", 0)
	good := pendingMessage(t, "booking.seated", 0)

	var sent []uuid.UUID
	repo := &mockOutboxRepo{
		PickBatchFunc: func(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
			return []entity.OutboxMessage{bad, good}, nil
		},
		MarkSentFunc: func(ctx context.Context, id uuid.UUID) error {
			sent = append(sent, id)
			return nil
		},
	}
	publisher := &mockPublisher{
		PublishFunc: func(ctx context.Context, eventType, key string, payload []byte) error {
			if eventType == "booking.created" {
				return errors.New("broker unavailable")
			}
			return nil
		},
	}
	worker := NewOutboxWorker(repo, publisher, time.Second, 50, zap.NewNop())

	worker.Drain(context.Background())

	assert.Equal(t, []uuid.UUID{good.ID}, sent)
}

func TestBackoffCapped(t *testing.T) {
	assert.Equal(t, 10*time.Second, backoff(0))
	assert.Equal(t, 20*time.Second, backoff(1))
	assert.Equal(t, 10*time.Minute, backoff(20))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &mockOutboxRepo{}
	worker := NewOutboxWorker(repo, &mockPublisher{}, 10*time.Millisecond, 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
