package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "smartphones", cfg.Store.DefaultCategory)
	assert.Equal(t, 12, cfg.Store.PageSize)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 5000, cfg.Postgres.StatementTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("STORE_PAGE_SIZE", "not-a-number")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg := LoadEnv()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 12, cfg.Store.PageSize)
	assert.True(t, cfg.Session.CookieSecure)
}
