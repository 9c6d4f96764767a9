package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "LOG_LEVEL", "JWT_EXPIRATION_HOURS", "SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_INTERVAL", "WRITE_TIMEOUT", "CLAUDE_MODEL", "CLAUDE_MAX_TOKENS", "ANTHROPIC_BASE_URL", "CORS_ALLOWED_ORIGINS"} {
		unsetForTest(t, key)
	}
	t.Setenv("JWT_SECRET", "s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiration)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 120*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "claude-2.1", cfg.Model)
	assert.EqualValues(t, 1000, cfg.MaxTokens)
	assert.Empty(t, cfg.AnthropicBaseURL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SESSION_IDLE_TIMEOUT", "10m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "30s")
	t.Setenv("CLAUDE_MODEL", "claude-3-haiku-20240307")
	t.Setenv("CLAUDE_MAX_TOKENS", "256")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.Model)
	assert.EqualValues(t, 256, cfg.MaxTokens)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SESSION_IDLE_TIMEOUT", "soon")
	t.Setenv("SESSION_SWEEP_INTERVAL", "-1s")
	t.Setenv("CLAUDE_MAX_TOKENS", "lots")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.EqualValues(t, 1000, cfg.MaxTokens)
}

func TestFromEnv_Errors(t *testing.T) {
	t.Run("empty jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("sweep longer than idle timeout", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("SESSION_IDLE_TIMEOUT", "1m")
		t.Setenv("SESSION_SWEEP_INTERVAL", "5m")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestAPIKey_ReadAtCallTime(t *testing.T) {
	t.Setenv(APIKeyEnv, "one")
	assert.Equal(t, "one", APIKey())
	t.Setenv(APIKeyEnv, "two")
	assert.Equal(t, "two", APIKey())
}

// unsetForTest removes key for the duration of the test and restores it afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
