// Package config provides application configuration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port                string        `env:"PORT" envDefault:"8080"`
	Env                 string        `env:"ENV" envDefault:"development"`
	GeminiAPIKey        string        `env:"GEMINI_API_KEY,required"`
	GeminiModel         string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-exp"`
	GeminiTimeout       time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`
	SessionHistoryLimit int           `env:"SESSION_HISTORY_LIMIT" envDefault:"0"`
}

// Load reads configuration from environment variables. A missing API
// credential is a fatal configuration error: it fails here, before any
// listener opens.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks constraints the env tags cannot express.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("GEMINI_MODEL cannot be empty")
	}
	if c.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive")
	}
	if c.SessionHistoryLimit < 0 {
		return fmt.Errorf("SESSION_HISTORY_LIMIT cannot be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}
