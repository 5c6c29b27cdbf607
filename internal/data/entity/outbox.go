package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxMessage is a domain event recorded alongside a state change and
// relayed asynchronously. Delivery is at-least-once and best-effort.
type OutboxMessage struct {
	BaseSimple
	EventType   string       `db:"event_type"`
	ClubID      int64        `db:"club_id"`
	EntityID    string       `db:"entity_id"`
	Payload     []byte       `db:"payload"`
	Status      OutboxStatus `db:"status"`
	Attempts    int          `db:"attempts"`
	LastError   string       `db:"last_error"`
	NextAttempt time.Time    `db:"next_attempt_at"`
	SentAt      *time.Time   `db:"sent_at"`
}

func NewOutboxMessage(eventType string, clubID int64, entityID string, payload any) (*OutboxMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxMessage{
		BaseSimple: BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		EventType:   eventType,
		ClubID:      clubID,
		EntityID:    entityID,
		Payload:     body,
		Status:      OutboxStatusPending,
		NextAttempt: now,
	}, nil
}
