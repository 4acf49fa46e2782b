package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDRESS", "KAFKA_BROKERS", "SEED_FILE", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Empty(t, cfg.KafkaBrokers)
	require.False(t, cfg.EventsEnabled())
	require.Equal(t, "activity_roster_events", cfg.RosterTopic)
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ROSTER_PUBLISH_TIMEOUT", "not-a-duration")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.True(t, cfg.EventsEnabled())
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, 2*time.Second, cfg.PublishTimeout)
	require.Equal(t, "DEBUG", cfg.LogLevel)
}
