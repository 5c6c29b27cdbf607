package response

import "time"

type Hold struct {
	HoldID       string    `json:"hold_id"`
	TableID      int64     `json:"table_id"`
	EventID      int64     `json:"event_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	TotalDeposit float64   `json:"total_deposit"`
}

type Booking struct {
	ID           string    `json:"id"`
	ClubID       int64     `json:"club_id"`
	EventID      int64     `json:"event_id"`
	TableID      int64     `json:"table_id"`
	TableNumber  string    `json:"table_number"`
	GuestsCount  int       `json:"guests_count"`
	TotalDeposit float64   `json:"total_deposit"`
	Status       string    `json:"status"`
	ArrivalBy    time.Time `json:"arrival_by"`
	QRSecret     string    `json:"qr_secret"`
	CreatedAt    time.Time `json:"created_at"`
}
