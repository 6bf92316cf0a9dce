// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration
type Config struct {
	Addr           string        `env:"BLACKJACK_ADDR"            envDefault:":7777"`
	DatabasePath   string        `env:"BLACKJACK_DB"              envDefault:"blackjack.db"`
	Debug          bool          `env:"BLACKJACK_DEBUG"           envDefault:"false"`
	StatusInterval time.Duration `env:"BLACKJACK_STATUS_INTERVAL" envDefault:"1s"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
