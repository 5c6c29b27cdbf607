package usecase

import (
	"testing"
	"time"

	"club-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestIsOnlineBookingOpen(t *testing.T) {
	start := time.Date(2025, 5, 3, 22, 0, 0, 0, time.UTC)
	slot := entity.NightSlot{
		EventStartUTC: start,
		EventEndUTC:   start.Add(6 * time.Hour),
	}

	tests := []struct {
		name   string
		cutoff time.Duration
		now    time.Time
		want   bool
	}{
		{
			name:   "well before cutoff",
			cutoff: time.Hour,
			now:    start.Add(-2 * time.Hour),
			want:   true,
		},
		{
			name:   "exactly at cutoff",
			cutoff: time.Hour,
			now:    start.Add(-time.Hour),
			want:   false,
		},
		{
			name:   "inside cutoff window",
			cutoff: time.Hour,
			now:    start.Add(-30 * time.Minute),
			want:   false,
		},
		{
			name:   "zero cutoff stays open until start",
			cutoff: 0,
			now:    start.Add(-time.Second),
			want:   true,
		},
		{
			name:   "zero cutoff closed at start",
			cutoff: 0,
			now:    start,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := CutoffPolicy{CutoffBefore: tt.cutoff}
			assert.Equal(t, tt.want, policy.IsOnlineBookingOpen(slot, tt.now))
		})
	}
}

func TestArrivalBy(t *testing.T) {
	end := time.Date(2025, 5, 4, 4, 0, 0, 0, time.UTC)
	slot := entity.NightSlot{
		EventStartUTC: end.Add(-6 * time.Hour),
		EventEndUTC:   end,
	}

	policy := CutoffPolicy{ArrivalBeforeClose: 2 * time.Hour}
	assert.Equal(t, end.Add(-2*time.Hour), policy.ArrivalBy(slot))

	// With no offset guests may arrive until close.
	assert.Equal(t, end, CutoffPolicy{}.ArrivalBy(slot))
}
