// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted in STORAGE.
const (
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"3000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage selects the backend: sqlite (default), memory, or postgres.
	// Setting DB_DSN switches the default to postgres; an explicit STORAGE
	// still wins.
	Storage string `env:"STORAGE" envDefault:"sqlite"`
	DBPath  string `env:"DB_PATH" envDefault:"data/pets.db"`
	DBDSN   string `env:"DB_DSN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env: %w", err)
	}

	if cfg.DBDSN != "" && cfg.Storage == StorageSQLite {
		cfg.Storage = StoragePostgres
	}

	switch cfg.Storage {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return Config{}, fmt.Errorf("STORAGE=postgres requires DB_DSN")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
