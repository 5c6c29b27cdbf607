package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCivilDateAddDaysNormalizes(t *testing.T) {
	d := CivilDate{Year: 2025, Month: time.May, Day: 31}
	assert.Equal(t, CivilDate{Year: 2025, Month: time.June, Day: 1}, d.AddDays(1))

	// Leap day rollover.
	d = CivilDate{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, CivilDate{Year: 2024, Month: time.February, Day: 29}, d.AddDays(1))
}

func TestCivilDateOrdering(t *testing.T) {
	a := CivilDate{Year: 2025, Month: time.May, Day: 2}
	b := CivilDate{Year: 2025, Month: time.May, Day: 3}

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
}

func TestMinuteOfDayAtRespectsZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}

	m := NewMinuteOfDay(22, 30)
	got := m.At(CivilDate{Year: 2025, Month: time.May, Day: 2}, loc)

	assert.Equal(t, time.Date(2025, 5, 2, 22, 30, 0, 0, loc), got)
	assert.Equal(t, "22:30", m.String())
}

func TestCivilDateString(t *testing.T) {
	d := CivilDate{Year: 2025, Month: time.May, Day: 4}
	assert.Equal(t, "2025-05-04", d.String())
}
