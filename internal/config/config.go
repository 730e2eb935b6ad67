// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server needs at startup. GeminiAPIKey is the
// only optional field: without it the matching core runs heuristics-only.
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
	JWT          JWTConfig
	LogJSON      bool
	Debug        bool
}

// JWTConfig holds configuration for JWT token validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// FromEnv builds a Config from environment variables: PORT (default 8080),
// DATABASE_URL (required), GEMINI_API_KEY (optional), JWT_SECRET (required),
// JWT_EXPIRATION_HOURS (default 24), LOG_JSON, DEBUG.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			ExpirationHours: 24,
		},
		LogJSON: os.Getenv("LOG_JSON") == "true",
		Debug:   os.Getenv("DEBUG") == "true",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}

	if expStr := os.Getenv("JWT_EXPIRATION_HOURS"); expStr != "" {
		hours, err := strconv.Atoi(expStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.JWT.ExpirationHours = hours
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and numeric ranges.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.JWT.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.JWT.ExpirationHours)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1-65535, got: %d", c.Port)
	}
	return nil
}
