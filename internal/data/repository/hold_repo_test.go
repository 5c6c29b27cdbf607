package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"club-booking/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// An expired hold must not block a new one between sweep ticks, so the
// insert path clears stale rows for the slot first.
func TestHoldInsertPurgesExpiredRowsFirst(t *testing.T) {
	var statements []string
	var purgeArgs []any
	db := &mockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			statements = append(statements, strings.TrimSpace(sql))
			if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
				purgeArgs = args
			}
			return pgconn.CommandTag{}, nil
		},
	}
	repo := NewHoldRepository(db, zap.NewNop())

	hold := entity.NewHold(3, 5, 4, time.Now().Add(7*time.Minute), "hold-key-1")
	got, err := repo.Insert(context.Background(), hold)

	require.NoError(t, err)
	assert.Equal(t, hold.ID, got.ID)
	require.Len(t, statements, 2)
	assert.Contains(t, statements[0], "DELETE FROM holds")
	assert.Contains(t, statements[0], "expires_at <= now()")
	assert.Contains(t, statements[1], "INSERT INTO holds")
	assert.Equal(t, []any{int64(3), int64(5)}, purgeArgs)
}

func TestHoldInsertReplayWhenPairIndexRejectsFirst(t *testing.T) {
	existing := entity.NewHold(3, 5, 4, time.Now().Add(7*time.Minute), "hold-key-2")

	db := &mockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
				return pgconn.CommandTag{}, nil
			}
			return pgconn.CommandTag{}, pgUniqueViolation("holds_table_event_idx")
		},
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return holdRow(existing)
		},
	}
	repo := NewHoldRepository(db, zap.NewNop())

	retry := entity.NewHold(3, 5, 4, time.Now().Add(7*time.Minute), "hold-key-2")
	got, err := repo.Insert(context.Background(), retry)

	require.ErrorIs(t, err, ErrIdempotentReplay)
	require.NotNil(t, got)
	assert.Equal(t, existing.ID, got.ID)
}

func TestHoldInsertConflictWhenKeyUnknown(t *testing.T) {
	db := &mockDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if strings.HasPrefix(strings.TrimSpace(sql), "DELETE") {
				return pgconn.CommandTag{}, nil
			}
			return pgconn.CommandTag{}, pgUniqueViolation("holds_table_event_idx")
		},
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return noRow()
		},
	}
	repo := NewHoldRepository(db, zap.NewNop())

	got, err := repo.Insert(context.Background(), entity.NewHold(3, 5, 4, time.Now().Add(7*time.Minute), "fresh-key"))

	require.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, got)
}

func TestUniqueViolationDetection(t *testing.T) {
	constraint, ok := uniqueViolation(pgUniqueViolation("holds_table_event_idx"))
	assert.True(t, ok)
	assert.Equal(t, "holds_table_event_idx", constraint)

	_, ok = uniqueViolation(context.DeadlineExceeded)
	assert.False(t, ok)

	_, ok = uniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)
}
