package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GIN_MODE", "DB_PATH", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS",
		"TO_EMAIL", "ADMIN_USERNAME", "ADMIN_PASSWORD", "CONTACT_DELAY_MS", "CONTACT_RESET_MS",
		"CAROUSEL_PERIOD_MS", "OTEL_ENABLED", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "portfolio.db", cfg.DBPath)
	assert.Equal(t, 2*time.Second, cfg.ContactDelay)
	assert.Equal(t, 3*time.Second, cfg.ContactReset)
	assert.Equal(t, 5*time.Second, cfg.CarouselPeriod)
	assert.False(t, cfg.OTelEnabled)
	assert.False(t, cfg.SMTP.Configured())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", " 9090 ")
	t.Setenv("CONTACT_DELAY_MS", "0")
	t.Setenv("OTEL_ENABLED", "Yes")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.ContactDelay)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, "me@example.com", cfg.ToEmail)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	for key, val := range map[string]string{
		"CONTACT_DELAY_MS":   "soon",
		"CONTACT_RESET_MS":   "-1",
		"CAROUSEL_PERIOD_MS": "0",
		"LOG_LEVEL":          "chatty",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}
