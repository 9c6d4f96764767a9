package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// APIKeyEnv is the environment variable holding the model API credential.
// It is deliberately not captured in Config: the gateway reads it on every call.
const APIKeyEnv = "ANTHROPIC_API_KEY"

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort           string
	LogLevel           string
	JWTSecret          string
	TokenExpiration    time.Duration
	SessionIdleTimeout time.Duration
	SweepInterval      time.Duration
	WriteTimeout       time.Duration
	Model              string
	MaxTokens          int64
	AnthropicBaseURL   string
	AllowedOrigins     []string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file, using environment variables only")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          getEnv("JWT_SECRET", "default-super-secret-key"), // CHANGE THIS IN PRODUCTION!
		TokenExpiration:    time.Hour * time.Duration(getInt("JWT_EXPIRATION_HOURS", 24)),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SweepInterval:      getDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		WriteTimeout:       getDuration("WRITE_TIMEOUT", 120*time.Second),
		Model:              getEnv("CLAUDE_MODEL", "claude-2.1"),
		MaxTokens:          getInt("CLAUDE_MAX_TOKENS", 1000),
		AnthropicBaseURL:   getEnv("ANTHROPIC_BASE_URL", ""),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.SweepInterval > cfg.SessionIdleTimeout {
		return nil, errors.New("SESSION_SWEEP_INTERVAL must not exceed SESSION_IDLE_TIMEOUT")
	}

	log.Info().
		Str("port", cfg.HTTPPort).
		Str("model", cfg.Model).
		Int64("max_tokens", cfg.MaxTokens).
		Dur("session_idle_timeout", cfg.SessionIdleTimeout).
		Bool("api_key_set", APIKey() != "").
		Msg("loaded config")

	return cfg, nil
}

// APIKey reads the model API credential from the process environment.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Debug().Str("key", key).Str("default", fallback).Msg("env variable not set, using default")
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, fallback.String())
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return d
}

func getInt(key string, fallback int64) int64 {
	raw := getEnv(key, strconv.FormatInt(fallback, 10))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", raw).Int64("default", fallback).Msg("invalid integer, using default")
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
