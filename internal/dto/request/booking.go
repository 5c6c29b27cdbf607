package request

import "time"

type HoldRequest struct {
	ClubID        int64     `json:"club_id" validate:"required"`
	TableID       int64     `json:"table_id" validate:"required"`
	EventStartUTC time.Time `json:"event_start_utc" validate:"required"`
	GuestsCount   int       `json:"guests_count" validate:"required,min=1"`
}

type ConfirmRequest struct {
	ClubID        int64     `json:"club_id" validate:"required"`
	TableID       int64     `json:"table_id" validate:"required"`
	EventStartUTC time.Time `json:"event_start_utc" validate:"required"`
	GuestsCount   int       `json:"guests_count" validate:"required,min=1"`
	HoldID        string    `json:"hold_id,omitempty" validate:"omitempty,uuid"`
}

type CancelRequest struct {
	ActorID int64  `json:"actor_id,omitempty"`
	Reason  string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type SeatRequest struct {
	QRSecret string `json:"qr_secret" validate:"required,len=64"`
	ActorID  int64  `json:"actor_id,omitempty"`
}
