// Package config loads server settings from the environment.
//
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full server configuration.
type Config struct {
	Port         string        `env:"PORT"          envDefault:"5175"`
	LogLevel     string        `env:"LOG_LEVEL"     envDefault:"info"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	RoundDelay   time.Duration `env:"ROUND_DELAY"   envDefault:"2s"`
	SessionDelay time.Duration `env:"SESSION_DELAY" envDefault:"3s"`
	HistoryDSN   string        `env:"HISTORY_DSN"   envDefault:"file:psychic?mode=memory&cache=shared"`
	HistoryLimit int           `env:"HISTORY_LIMIT" envDefault:"20"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RoundDelay < 0 || cfg.SessionDelay < 0 {
		return Config{}, fmt.Errorf("parse env: negative delay (round %s, session %s)", cfg.RoundDelay, cfg.SessionDelay)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }
