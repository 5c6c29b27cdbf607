package repository

import (
	"context"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HoldRepository interface {
	// Insert persists a hold after clearing expired holds for the same
	// (table_id, event_id) slot. On a uniqueness violation the idempotency
	// key is resolved first: a match yields the already-inserted hold with
	// ErrIdempotentReplay, otherwise ErrConflict.
	Insert(ctx context.Context, hold *entity.Hold) (*entity.Hold, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListActiveTableIDs(ctx context.Context, eventID int64, now time.Time) (map[int64]struct{}, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type holdRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHoldRepository(db database.PgxIface, log *zap.Logger) HoldRepository {
	return &holdRepository{
		db:  db,
		log: log.With(zap.String("repository", "hold")),
	}
}

func (r *holdRepository) Insert(ctx context.Context, hold *entity.Hold) (*entity.Hold, error) {
	// A hold past its TTL must never block a new one. The sweep worker only
	// runs periodically, so clear stale rows for this slot inline.
	purge := `DELETE FROM holds WHERE table_id = $1 AND event_id = $2 AND expires_at <= now()`
	if _, err := r.db.Exec(ctx, purge, hold.TableID, hold.EventID); err != nil {
		r.log.Error("Failed to purge expired holds before insert",
			zap.Error(err),
			zap.Int64("table_id", hold.TableID),
			zap.Int64("event_id", hold.EventID),
		)
		return nil, fmt.Errorf("purge expired holds for table %d: %w", hold.TableID, err)
	}

	query := `
		INSERT INTO holds (id, table_id, event_id, guests_count, expires_at, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		hold.ID,
		hold.TableID,
		hold.EventID,
		hold.GuestsCount,
		hold.ExpiresAt,
		hold.IdempotencyKey,
		hold.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			// Postgres reports whichever unique index rejects first, so the
			// constraint name cannot distinguish a replay from a lost race.
			// Resolve the idempotency key before concluding conflict.
			existing, findErr := r.findByIdempotencyKey(ctx, hold.IdempotencyKey)
			if findErr == nil && existing != nil {
				return existing, ErrIdempotentReplay
			}
			r.log.Warn("Hold insert lost uniqueness race",
				zap.Int64("table_id", hold.TableID),
				zap.Int64("event_id", hold.EventID),
				zap.String("constraint", constraint),
			)
			return nil, ErrConflict
		}
		r.log.Error("Failed to insert hold",
			zap.Error(err),
			zap.Int64("table_id", hold.TableID),
			zap.Int64("event_id", hold.EventID),
		)
		return nil, fmt.Errorf("insert hold for table %d: %w", hold.TableID, err)
	}

	return hold, nil
}

func (r *holdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM holds WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete hold",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return fmt.Errorf("delete hold %s: %w", id.String(), err)
	}

	return nil
}

func (r *holdRepository) findByIdempotencyKey(ctx context.Context, key string) (*entity.Hold, error) {
	query := `
		SELECT id, table_id, event_id, guests_count, expires_at, idempotency_key, created_at
		FROM holds
		WHERE idempotency_key = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, key))
}

func (r *holdRepository) scanOne(row pgx.Row) (*entity.Hold, error) {
	var hold entity.Hold
	err := row.Scan(
		&hold.ID,
		&hold.TableID,
		&hold.EventID,
		&hold.GuestsCount,
		&hold.ExpiresAt,
		&hold.IdempotencyKey,
		&hold.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan hold row: %w", err)
	}
	return &hold, nil
}

func (r *holdRepository) ListActiveTableIDs(ctx context.Context, eventID int64, now time.Time) (map[int64]struct{}, error) {
	query := `SELECT table_id FROM holds WHERE event_id = $1 AND expires_at > $2`

	rows, err := r.db.Query(ctx, query, eventID, now)
	if err != nil {
		r.log.Error("Failed to list active hold table IDs",
			zap.Error(err),
			zap.Int64("event_id", eventID),
		)
		return nil, fmt.Errorf("list active holds for event %d: %w", eventID, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var tableID int64
		if err := rows.Scan(&tableID); err != nil {
			r.log.Error("Failed to scan hold table ID", zap.Error(err))
			return nil, fmt.Errorf("scan hold table ID: %w", err)
		}
		ids[tableID] = struct{}{}
	}

	return ids, rows.Err()
}

func (r *holdRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM holds WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to delete expired holds", zap.Error(err))
		return 0, fmt.Errorf("delete expired holds: %w", err)
	}

	return tag.RowsAffected(), nil
}
