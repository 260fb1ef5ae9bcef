// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	CMSBaseURL    string `env:"PAYBLOG_CMS_URL,required"` // Base URL of the Payload backend
	SessionSecret string `env:"PAYBLOG_SESSION_SECRET,required"`
	ServerHost    string `env:"PAYBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PAYBLOG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PAYBLOG_ENV" envDefault:"development"`
	LogLevel      string `env:"PAYBLOG_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"PAYBLOG_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"PAYBLOG_CACHE_PREFIX" envDefault:"payblog:"` // Redis key prefix
	CacheTTL     int    `env:"PAYBLOG_CACHE_TTL" envDefault:"60"`          // Default cache TTL in seconds
	CacheMaxSize int    `env:"PAYBLOG_CACHE_MAX_SIZE" envDefault:"1000"`   // Max memory cache entries

	// Login rate limiting
	LoginRateLimit float64 `env:"PAYBLOG_LOGIN_RATE_LIMIT" envDefault:"0.5"` // Requests per second per IP
	LoginBurst     int     `env:"PAYBLOG_LOGIN_BURST" envDefault:"5"`        // Burst size per IP
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The CSRF key requires 32 bytes minimum.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate the backend URL early so a typo fails at startup,
	// not on the first request
	u, err := url.Parse(cfg.CMSBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("PAYBLOG_CMS_URL must be an absolute URL, got %q", cfg.CMSBaseURL)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PAYBLOG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PAYBLOG_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PAYBLOG_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
