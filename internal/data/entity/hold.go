package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hold is a short-lived provisional reservation of a table for one event.
// It exists only until expiry, deletion on confirm, or conflict rollback.
type Hold struct {
	BaseSimple
	TableID        int64     `db:"table_id"`
	EventID        int64     `db:"event_id"`
	GuestsCount    int       `db:"guests_count"`
	ExpiresAt      time.Time `db:"expires_at"`
	IdempotencyKey string    `db:"idempotency_key"`
}

func NewHold(tableID, eventID int64, guests int, expiresAt time.Time, idemKey string) *Hold {
	return &Hold{
		BaseSimple: BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TableID:        tableID,
		EventID:        eventID,
		GuestsCount:    guests,
		ExpiresAt:      expiresAt,
		IdempotencyKey: idemKey,
	}
}
