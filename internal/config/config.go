// Package config handles application configuration from environment variables
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// Worker tuning.
	WorkerConcurrency int `env:"WORKER_CONCURRENCY" envDefault:"8"`

	// Rolling feedback window the adaptive controller reads, in days.
	FeedbackWindowDays int `env:"FEEDBACK_WINDOW_DAYS" envDefault:"7"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// HasDatabase returns true when a Postgres-backed store can be used.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// Validate ensures the configuration is usable for the server binaries.
// DATABASE_URL is optional: the api falls back to the in-memory store.
func (c *Config) Validate() error {
	if c.FeedbackWindowDays < 1 || c.FeedbackWindowDays > 28 {
		return fmt.Errorf("FEEDBACK_WINDOW_DAYS must be between 1-28, got %d", c.FeedbackWindowDays)
	}
	return nil
}
