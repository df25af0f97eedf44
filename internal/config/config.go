package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageBackendBolt   = "bbolt"
	StorageBackendRedis  = "redis"
	StorageBackendMemory = "memory"
)

const (
	CatalogDriverSQLite = "sqlite"
	CatalogDriverMySQL  = "mysql"
)

// Config holds everything the server needs at startup. Values come from the
// environment so deployments can switch storage backends without rebuilding.
// CatalogDriver doubles as the database/sql driver name.
type Config struct {
	HTTPAddr        string        `env:"CART_HTTP_ADDR"        envDefault:":8080"`
	StorageBackend  string        `env:"CART_STORAGE_BACKEND"  envDefault:"bbolt"`
	StoragePath     string        `env:"CART_STORAGE_PATH"     envDefault:"shopping-cart.db"`
	StorageKey      string        `env:"CART_STORAGE_KEY"      envDefault:"shopping-cart"`
	RedisAddr       string        `env:"CART_REDIS_ADDR"       envDefault:"localhost:6379"`
	CatalogDriver   string        `env:"CART_CATALOG_DRIVER"   envDefault:"sqlite"`
	CatalogDSN      string        `env:"CART_CATALOG_DSN"      envDefault:"catalog.db"`
	ShutdownTimeout time.Duration `env:"CART_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageBackendBolt, StorageBackendRedis, StorageBackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	switch cfg.CatalogDriver {
	case CatalogDriverSQLite, CatalogDriverMySQL:
	default:
		return Config{}, fmt.Errorf("unknown catalog driver %q", cfg.CatalogDriver)
	}

	if cfg.StorageKey == "" {
		return Config{}, fmt.Errorf("storage key must not be empty")
	}

	return cfg, nil
}
