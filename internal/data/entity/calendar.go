package entity

import (
	"fmt"
	"time"
)

// CivilDate is a calendar date without a time zone attached.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) AddDays(n int) CivilDate {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func (d CivilDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d CivilDate) Before(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d CivilDate) After(other CivilDate) bool {
	return other.Before(d)
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MinuteOfDay is a wall-clock time within a local day, minutes since midnight.
type MinuteOfDay int

func NewMinuteOfDay(hour, minute int) MinuteOfDay {
	return MinuteOfDay(hour*60 + minute)
}

func (m MinuteOfDay) Hour() int   { return int(m) / 60 }
func (m MinuteOfDay) Minute() int { return int(m) % 60 }

// At anchors the wall-clock time on the given date in the given zone.
// time.Date normalizes times that fall into a DST gap.
func (m MinuteOfDay) At(d CivilDate, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, m.Hour(), m.Minute(), 0, 0, loc)
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}
