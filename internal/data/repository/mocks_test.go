package repository

import (
	"context"
	"errors"
	"time"

	"club-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mockDB implements database.PgxIface for exercising the repositories'
// error interpretation without a live pool.
type mockDB struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc == nil {
		return pgconn.CommandTag{}, nil
	}
	return m.ExecFunc(ctx, sql, args...)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.QueryRowFunc(ctx, sql, args...)
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query call")
}

func (m *mockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("unexpected Begin call")
}

func (m *mockDB) Ping(ctx context.Context) error { return nil }

func (m *mockDB) Close() {}

type mockRow struct {
	ScanFunc func(dest ...any) error
}

func (r mockRow) Scan(dest ...any) error { return r.ScanFunc(dest...) }

func noRow() pgx.Row {
	return mockRow{ScanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
}

func bookingRow(b *entity.Booking) pgx.Row {
	return mockRow{ScanFunc: func(dest ...any) error {
		*dest[0].(*uuid.UUID) = b.ID
		*dest[1].(*int64) = b.TableID
		*dest[2].(*int64) = b.EventID
		*dest[3].(*string) = b.TableNumber
		*dest[4].(*int) = b.GuestsCount
		*dest[5].(*float64) = b.TotalDeposit
		*dest[6].(*entity.BookingStatus) = b.Status
		*dest[7].(*time.Time) = b.ArrivalBy
		*dest[8].(*string) = b.QRSecret
		*dest[9].(*string) = b.IdempotencyKey
		*dest[10].(*time.Time) = b.CreatedAt
		*dest[11].(*time.Time) = b.UpdatedAt
		return nil
	}}
}

func holdRow(h *entity.Hold) pgx.Row {
	return mockRow{ScanFunc: func(dest ...any) error {
		*dest[0].(*uuid.UUID) = h.ID
		*dest[1].(*int64) = h.TableID
		*dest[2].(*int64) = h.EventID
		*dest[3].(*int) = h.GuestsCount
		*dest[4].(*time.Time) = h.ExpiresAt
		*dest[5].(*string) = h.IdempotencyKey
		*dest[6].(*time.Time) = h.CreatedAt
		return nil
	}}
}

func pgUniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraint}
}
