package worker

import (
	"context"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/pkg/queue"

	"go.uber.org/zap"
)

// OutboxWorker drains pending outbox rows and publishes them. Rows are
// picked with FOR UPDATE SKIP LOCKED so multiple instances can run safely.
type OutboxWorker struct {
	outbox    repository.OutboxRepository
	publisher queue.Publisher
	interval  time.Duration
	batchSize int
	log       *zap.Logger
}

func NewOutboxWorker(
	outbox repository.OutboxRepository,
	publisher queue.Publisher,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		log:       log.With(zap.String("worker", "outbox")),
	}
}

// Run blocks until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("Outbox worker started",
		zap.Duration("interval", w.interval),
		zap.Int("batch_size", w.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Outbox worker stopped")
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain processes one batch. Exported so tests and the ticker loop share it.
func (w *OutboxWorker) Drain(ctx context.Context) {
	batch, err := w.outbox.PickBatch(ctx, time.Now(), w.batchSize)
	if err != nil {
		w.log.Error("Failed to pick outbox batch", zap.Error(err))
		return
	}

	for i := range batch {
		msg := &batch[i]
		if err := w.publish(ctx, msg); err != nil {
			next := time.Now().Add(backoff(msg.Attempts))
			if markErr := w.outbox.MarkFailed(ctx, msg.ID, err.Error(), next); markErr != nil {
				w.log.Error("Failed to mark outbox message failed", zap.Error(markErr))
			}
			continue
		}
		if err := w.outbox.MarkSent(ctx, msg.ID); err != nil {
			// Publish succeeded but the row stays pending; the message will
			// be delivered again. Consumers must tolerate duplicates.
			w.log.Error("Failed to mark outbox message sent", zap.Error(err))
		}
	}
}

func (w *OutboxWorker) publish(ctx context.Context, msg *entity.OutboxMessage) error {
	return w.publisher.Publish(ctx, msg.EventType, msg.EntityID, msg.Payload)
}

// backoff grows the retry delay with each attempt: 10s, 20s, 40s, ...
func backoff(attempts int) time.Duration {
	d := 10 * time.Second
	for i := 0; i < attempts; i++ {
		d *= 2
	}
	if d > 10*time.Minute {
		d = 10 * time.Minute
	}
	return d
}
