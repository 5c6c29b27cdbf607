package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusSeated    BookingStatus = "SEATED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// Booking is a confirmed table reservation. Transitions are one-directional:
// BOOKED -> SEATED | CANCELLED | NO_SHOW, all of which are terminal.
type Booking struct {
	Base
	TableID        int64         `db:"table_id"`
	EventID        int64         `db:"event_id"`
	TableNumber    string        `db:"table_number"`
	GuestsCount    int           `db:"guests_count"`
	TotalDeposit   float64       `db:"total_deposit"`
	Status         BookingStatus `db:"status"`
	ArrivalBy      time.Time     `db:"arrival_by"`
	QRSecret       string        `db:"qr_secret"`
	IdempotencyKey string        `db:"idempotency_key"`
}
