package entity

import "time"

// Club is immutable reference data; Timezone is an IANA zone name.
type Club struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Timezone string `db:"timezone"`
}

// WeeklyHour is a recurring weekly operating window. Close earlier than or
// equal to Open means the window spans past local midnight.
type WeeklyHour struct {
	ClubID    int64        `db:"club_id"`
	DayOfWeek time.Weekday `db:"day_of_week"`
	Open      MinuteOfDay  `db:"open_time"`
	Close     MinuteOfDay  `db:"close_time"`
}

// Holiday overrides the schedule for a single date. Nil override boundaries
// inherit from whatever weekly hours or exception is in effect that date.
type Holiday struct {
	ClubID        int64        `db:"club_id"`
	Date          CivilDate    `db:"holiday_date"`
	IsOpen        bool         `db:"is_open"`
	OverrideOpen  *MinuteOfDay `db:"override_open"`
	OverrideClose *MinuteOfDay `db:"override_close"`
}

// DateException overrides weekly hours for a single date. A holiday on the
// same date wins for the boundary values it specifies.
type DateException struct {
	ClubID        int64        `db:"club_id"`
	Date          CivilDate    `db:"exception_date"`
	IsOpen        bool         `db:"is_open"`
	OverrideOpen  *MinuteOfDay `db:"override_open"`
	OverrideClose *MinuteOfDay `db:"override_close"`
}
