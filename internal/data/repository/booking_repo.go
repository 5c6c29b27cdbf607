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

type BookingRepository interface {
	// Insert persists a booking. On a uniqueness violation the idempotency
	// key is resolved first: a match yields the existing booking with
	// ErrIdempotentReplay, otherwise the slot is taken and ErrConflict is
	// returned.
	Insert(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByQRSecret(ctx context.Context, secret string) (*entity.Booking, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	ListActiveTableIDs(ctx context.Context, eventID int64) (map[int64]struct{}, error)
	MarkNoShowOverdue(ctx context.Context, now time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, table_id, event_id, table_number, guests_count, total_deposit,
		status, arrival_by, qr_secret, idempotency_key, created_at, updated_at`

func (r *bookingRepository) Insert(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (id, table_id, event_id, table_number, guests_count, total_deposit,
			status, arrival_by, qr_secret, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TableID,
		booking.EventID,
		booking.TableNumber,
		booking.GuestsCount,
		booking.TotalDeposit,
		booking.Status,
		booking.ArrivalBy,
		booking.QRSecret,
		booking.IdempotencyKey,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			// A replayed insert violates both the idempotency-key index and
			// the active (table_id, event_id) index, and Postgres reports
			// whichever it checks first. Resolve the key before concluding
			// that another booking won the slot.
			existing, findErr := r.FindByIdempotencyKey(ctx, booking.IdempotencyKey)
			if findErr == nil && existing != nil {
				return existing, ErrIdempotentReplay
			}
			r.log.Warn("Booking insert lost uniqueness race",
				zap.Int64("table_id", booking.TableID),
				zap.Int64("event_id", booking.EventID),
				zap.String("constraint", constraint),
			)
			return nil, ErrConflict
		}
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.Int64("table_id", booking.TableID),
			zap.Int64("event_id", booking.EventID),
		)
		return nil, fmt.Errorf("insert booking for table %d: %w", booking.TableID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *bookingRepository) FindByQRSecret(ctx context.Context, secret string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE qr_secret = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, secret))
}

func (r *bookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE idempotency_key = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, key))
}

func (r *bookingRepository) scanOne(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TableID,
		&booking.EventID,
		&booking.TableNumber,
		&booking.GuestsCount,
		&booking.TotalDeposit,
		&booking.Status,
		&booking.ArrivalBy,
		&booking.QRSecret,
		&booking.IdempotencyKey,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan booking row: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, status, time.Now()); err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	return nil
}

func (r *bookingRepository) ListActiveTableIDs(ctx context.Context, eventID int64) (map[int64]struct{}, error) {
	query := `SELECT table_id FROM bookings WHERE event_id = $1 AND status IN ('BOOKED', 'SEATED')`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to list active booking table IDs",
			zap.Error(err),
			zap.Int64("event_id", eventID),
		)
		return nil, fmt.Errorf("list active bookings for event %d: %w", eventID, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var tableID int64
		if err := rows.Scan(&tableID); err != nil {
			r.log.Error("Failed to scan booking table ID", zap.Error(err))
			return nil, fmt.Errorf("scan booking table ID: %w", err)
		}
		ids[tableID] = struct{}{}
	}

	return ids, rows.Err()
}

func (r *bookingRepository) MarkNoShowOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'NO_SHOW', updated_at = $1
		WHERE status = 'BOOKED' AND arrival_by < $1
	`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to mark overdue bookings as no-show", zap.Error(err))
		return 0, fmt.Errorf("mark no-show overdue: %w", err)
	}

	return tag.RowsAffected(), nil
}
