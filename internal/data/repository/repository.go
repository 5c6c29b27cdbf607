package repository

import (
	"club-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Club    ClubRepository
	Event   EventRepository
	Table   TableRepository
	Hold    HoldRepository
	Booking BookingRepository
	Outbox  OutboxRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Club:    NewClubRepository(db, log),
		Event:   NewEventRepository(db, log),
		Table:   NewTableRepository(db, log),
		Hold:    NewHoldRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Outbox:  NewOutboxRepository(db, log),
	}
}
