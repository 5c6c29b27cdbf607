package entity

import "time"

// Event is a materialized event night stored in the database.
type Event struct {
	ID        int64     `db:"id"`
	ClubID    int64     `db:"club_id"`
	StartUTC  time.Time `db:"start_utc"`
	EndUTC    time.Time `db:"end_utc"`
	IsSpecial bool      `db:"is_special"`
}

// NightSource tells which schedule source produced a slot.
type NightSource string

const (
	NightSourceWeekly    NightSource = "weekly"
	NightSourceHoliday   NightSource = "holiday"
	NightSourceException NightSource = "exception"
	NightSourceEvent     NightSource = "event"
)

// NightSlot is a resolved open-to-close window for one club night.
// EventEndUTC is always strictly after EventStartUTC.
type NightSlot struct {
	ClubID        int64
	EventStartUTC time.Time
	EventEndUTC   time.Time
	IsSpecial     bool
	Source        NightSource
	OpenLocal     time.Time
	CloseLocal    time.Time
	Zone          *time.Location
}
