package repository

import (
	"context"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	// Enqueue records a domain event for asynchronous delivery.
	// Fire-and-forget from the caller's perspective; at-least-once intent.
	Enqueue(ctx context.Context, msg *entity.OutboxMessage) error
	PickBatch(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error
}

type outboxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutboxRepository(db database.PgxIface, log *zap.Logger) OutboxRepository {
	return &outboxRepository{
		db:  db,
		log: log.With(zap.String("repository", "outbox")),
	}
}

func (r *outboxRepository) Enqueue(ctx context.Context, msg *entity.OutboxMessage) error {
	query := `
		INSERT INTO outbox (id, event_type, club_id, entity_id, payload, status, attempts, next_attempt_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		msg.ID,
		msg.EventType,
		msg.ClubID,
		msg.EntityID,
		msg.Payload,
		msg.Status,
		msg.Attempts,
		msg.NextAttempt,
		msg.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to enqueue outbox message",
			zap.Error(err),
			zap.String("event_type", msg.EventType),
			zap.String("entity_id", msg.EntityID),
		)
		return fmt.Errorf("enqueue outbox %s: %w", msg.EventType, err)
	}

	return nil
}

func (r *outboxRepository) PickBatch(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
	query := `
		SELECT id, event_type, club_id, entity_id, payload, status, attempts, last_error, next_attempt_at, sent_at, created_at
		FROM outbox
		WHERE status = 'pending' AND next_attempt_at <= $1
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		r.log.Error("Failed to pick outbox batch", zap.Error(err))
		return nil, fmt.Errorf("pick outbox batch: %w", err)
	}
	defer rows.Close()

	var batch []entity.OutboxMessage
	for rows.Next() {
		var (
			msg       entity.OutboxMessage
			lastError *string
		)
		err := rows.Scan(
			&msg.ID,
			&msg.EventType,
			&msg.ClubID,
			&msg.EntityID,
			&msg.Payload,
			&msg.Status,
			&msg.Attempts,
			&lastError,
			&msg.NextAttempt,
			&msg.SentAt,
			&msg.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan outbox row", zap.Error(err))
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		if lastError != nil {
			msg.LastError = *lastError
		}
		batch = append(batch, msg)
	}

	return batch, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE outbox
		SET status = 'sent', sent_at = $2, last_error = NULL, attempts = attempts + 1
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, time.Now()); err != nil {
		r.log.Error("Failed to mark outbox message sent",
			zap.Error(err),
			zap.String("outbox_id", id.String()),
		)
		return fmt.Errorf("mark outbox %s sent: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error {
	query := `
		UPDATE outbox
		SET status = CASE WHEN attempts + 1 >= 5 THEN 'failed' ELSE 'pending' END,
		    last_error = $2, attempts = attempts + 1, next_attempt_at = $3
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, lastError, nextAttempt); err != nil {
		r.log.Error("Failed to mark outbox message failed",
			zap.Error(err),
			zap.String("outbox_id", id.String()),
		)
		return fmt.Errorf("mark outbox %s failed: %w", id.String(), err)
	}

	return nil
}
