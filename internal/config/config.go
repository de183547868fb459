// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection string (required)
	DatabaseURL string

	// Shared secret for the mutating blog API routes (required)
	APIKey string

	// Valkey (Redis-compatible) for the shared write rate limiter. An empty
	// host keeps the limiter in process.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Rate limit applied to POST/PUT/DELETE on /api/blog
	WriteRateLimit  int
	WriteRateWindow time.Duration

	// Read the client IP from X-Forwarded-For/X-Real-IP. Only safe behind a
	// reverse proxy that sets those headers itself.
	TrustProxyHeaders bool

	// Browser origins allowed to call /api/blog; empty disables CORS.
	CORSAllowedOrigins []string

	// Cookie consulted by the locale redirect middleware
	LocaleCookie string
}

// Load reads configuration from environment variables, applying defaults
// where appropriate. A .env file in the working directory is loaded first
// if present; real environment variables take precedence over it.
// Returns an error naming every missing or malformed required value.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      os.Getenv("BLOG_API_KEY"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LocaleCookie:       envOrDefault("LOCALE_COOKIE", "NEXT_LOCALE"),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL must be set"))
	}
	if cfg.APIKey == "" {
		errs = append(errs, errors.New("BLOG_API_KEY must be set"))
	}

	limit, err := strconv.Atoi(envOrDefault("WRITE_RATE_LIMIT", "30"))
	if err != nil || limit <= 0 {
		errs = append(errs, fmt.Errorf("WRITE_RATE_LIMIT must be a positive integer"))
	}
	cfg.WriteRateLimit = limit

	window, err := time.ParseDuration(envOrDefault("WRITE_RATE_WINDOW", "1m"))
	if err != nil || window <= 0 {
		errs = append(errs, fmt.Errorf("WRITE_RATE_WINDOW must be a positive duration"))
	}
	cfg.WriteRateWindow = window

	trust, err := strconv.ParseBool(envOrDefault("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TRUST_PROXY_HEADERS must be a boolean"))
	}
	cfg.TrustProxyHeaders = trust

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseValkey returns true if a Valkey host is configured.
func (c *Config) UseValkey() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
