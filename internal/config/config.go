// Package config loads process configuration from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"./data/cashlogger.db"`

	// SecretKey signs session cookies. Required in any real deployment;
	// when unset a random key is generated, which invalidates sessions
	// across restarts.
	SecretKey string `env:"SECRET_KEY"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.SecretKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		cfg.SecretKey = hex.EncodeToString(key)
		slog.Warn("SECRET_KEY not set; generated a random key, sessions will not survive restarts")
	}

	return cfg, nil
}
