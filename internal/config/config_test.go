package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "americasnlp/mt5-base-es-quw", cfg.ModelID)
	assert.Equal(t, "http://localhost:5000", cfg.EngineURL)
	assert.Equal(t, 512, cfg.MaxTextLength)
	assert.Equal(t, 200, cfg.MaxOutputLength)
	assert.Equal(t, 4, cfg.NumBeams)
	assert.Equal(t, int64(1<<16), cfg.MaxBodyBytes)
	assert.False(t, cfg.EagerLoad)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 0.0, cfg.RateLimit)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("RIMAY_PORT", "9090")
	t.Setenv("RIMAY_MODEL_ID", "americasnlp/mt5-small-es-quw")
	t.Setenv("RIMAY_MAX_TEXT_LENGTH", "256")
	t.Setenv("RIMAY_EAGER_LOAD", "true")
	t.Setenv("RIMAY_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RIMAY_RATE_LIMIT", "2.5")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "americasnlp/mt5-small-es-quw", cfg.ModelID)
	assert.Equal(t, 256, cfg.MaxTextLength)
	assert.True(t, cfg.EagerLoad)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RIMAY_MAX_TEXT_LENGTH", "not-a-number")
	t.Setenv("RIMAY_EAGER_LOAD", "yes-please")

	cfg := FromEnv()

	assert.Equal(t, 512, cfg.MaxTextLength)
	assert.False(t, cfg.EagerLoad)
}
