package repository

import (
	"context"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Event, error)
	FindByStart(ctx context.Context, clubID int64, startUTC time.Time) (*entity.Event, error)
	ListBetween(ctx context.Context, clubID int64, fromUTC, toUTC time.Time) ([]entity.Event, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `
		SELECT id, club_id, start_utc, end_utc, is_special
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.ClubID,
		&event.StartUTC,
		&event.EndUTC,
		&event.IsSpecial,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.Int64("event_id", id),
		)
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}

	return &event, nil
}

func (r *eventRepository) FindByStart(ctx context.Context, clubID int64, startUTC time.Time) (*entity.Event, error) {
	query := `
		SELECT id, club_id, start_utc, end_utc, is_special
		FROM events
		WHERE club_id = $1 AND start_utc = $2
	`

	var event entity.Event
	err := r.db.QueryRow(ctx, query, clubID, startUTC).Scan(
		&event.ID,
		&event.ClubID,
		&event.StartUTC,
		&event.EndUTC,
		&event.IsSpecial,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by start",
			zap.Error(err),
			zap.Int64("club_id", clubID),
			zap.Time("start_utc", startUTC),
		)
		return nil, fmt.Errorf("find event for club %d at %s: %w", clubID, startUTC, err)
	}

	return &event, nil
}

func (r *eventRepository) ListBetween(ctx context.Context, clubID int64, fromUTC, toUTC time.Time) ([]entity.Event, error) {
	query := `
		SELECT id, club_id, start_utc, end_utc, is_special
		FROM events
		WHERE club_id = $1 AND start_utc >= $2 AND start_utc < $3
		ORDER BY start_utc
	`

	rows, err := r.db.Query(ctx, query, clubID, fromUTC, toUTC)
	if err != nil {
		r.log.Error("Failed to list events",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("list events for club %d: %w", clubID, err)
	}
	defer rows.Close()

	var events []entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(&event.ID, &event.ClubID, &event.StartUTC, &event.EndUTC, &event.IsSpecial)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
