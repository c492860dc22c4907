package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/skill-test-service/internal/events"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUESTION_BANK_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SESSION_MAX_AGE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.QuestionBankURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionMaxAge)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUESTION_BANK_URL", "https://mcq.internal")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("QUESTION_CACHE_TTL", "not-a-duration")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://mcq.internal", cfg.QuestionBankURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Minute, cfg.QuestionCacheTTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
	assert.True(t, cfg.IsProduction())
}

func TestCreateEventPublisher_Mock(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, cfg := range []EventConfig{
		{Enabled: false, Publisher: "kafka"},
		{Enabled: true, Publisher: "mock"},
		{Enabled: true, Publisher: "carrier-pigeon"},
	} {
		publisher, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, publisher)
	}
}
