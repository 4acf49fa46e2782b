// Package config centralises configuration parsing for the sign-up service.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures runtime configuration values for the sign-up service.
type Config struct {
	HTTPAddress       string
	StaticDir         string // Directory served under /static/; empty disables static serving.
	SeedFile          string // YAML activity seed; empty uses the built-in catalogue.
	KafkaBrokers      []string
	RosterTopic       string
	PublishTimeout    time.Duration
	CORSAllowedOrigin string
	ShutdownTimeout   time.Duration
	LogLevel          string
	LogFormat         string
}

// Load reads environment variables into Config, applying sensible defaults for local dev.
func Load() Config {
	return Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8080"),
		StaticDir:         getEnv("STATIC_DIR", ""),
		SeedFile:          getEnv("SEED_FILE", ""),
		KafkaBrokers:      splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		RosterTopic:       getEnv("ROSTER_EVENTS_TOPIC", "activity_roster_events"),
		PublishTimeout:    getDurationEnv("ROSTER_PUBLISH_TIMEOUT", 2*time.Second),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		LogLevel:          strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}
}

// EventsEnabled reports whether roster events should be published.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
