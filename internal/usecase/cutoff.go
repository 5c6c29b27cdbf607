package usecase

import (
	"time"

	"club-booking/internal/data/entity"
)

// CutoffPolicy decides until when online booking is accepted for a slot and
// when guests must arrive. Both offsets vary by deployment and come from
// configuration.
type CutoffPolicy struct {
	// CutoffBefore is how long before event start online booking closes.
	// Zero means booking stays open until the event starts.
	CutoffBefore time.Duration

	// ArrivalBeforeClose is how long before event end guests must arrive.
	// Zero means the arrival deadline is the event end itself.
	ArrivalBeforeClose time.Duration
}

func (p CutoffPolicy) IsOnlineBookingOpen(slot entity.NightSlot, now time.Time) bool {
	return now.Before(slot.EventStartUTC.Add(-p.CutoffBefore))
}

func (p CutoffPolicy) ArrivalBy(slot entity.NightSlot) time.Time {
	return slot.EventEndUTC.Add(-p.ArrivalBeforeClose)
}
