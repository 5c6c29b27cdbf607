package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	env := "APP_NAME=club-booking-test\nDB_HOST=localhost\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, 7*time.Minute, config.Booking.HoldTTL)

	// Booking stays open until event start and guests may arrive until
	// close unless the operator opts into a cutoff.
	assert.Equal(t, time.Duration(0), config.Booking.CutoffBefore)
	assert.Equal(t, time.Duration(0), config.Booking.ArrivalBeforeClose)

	assert.Equal(t, 60*time.Second, config.Booking.NightsCacheTTL)
	assert.Equal(t, 60*time.Second, config.Booking.TablesCacheTTL)
	assert.Equal(t, 5*time.Second, config.Outbox.PollInterval)
	assert.Equal(t, 50, config.Outbox.BatchSize)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "booking-events", config.Kafka.Topic)
}
