package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict is returned when a uniqueness constraint rejects a write
	// because another hold or booking already occupies the slot.
	ErrConflict = errors.New("resource conflict")

	// ErrIdempotentReplay is returned together with the existing row when a
	// rejected insert carried an idempotency key that is already stored. The
	// caller already created this resource and should treat the call as a
	// replay.
	ErrIdempotentReplay = errors.New("idempotent replay")
)

const uniqueViolationCode = "23505"

// uniqueViolation reports whether err is a Postgres unique violation and
// returns the violated constraint name.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
