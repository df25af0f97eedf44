package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.StorageBackend != StorageBackendBolt {
		t.Errorf("expected bbolt backend, got %q", cfg.StorageBackend)
	}
	if cfg.StorageKey != "shopping-cart" {
		t.Errorf("expected shopping-cart key, got %q", cfg.StorageKey)
	}
	if cfg.CatalogDriver != CatalogDriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.CatalogDriver)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CART_HTTP_ADDR", ":9999")
	t.Setenv("CART_STORAGE_BACKEND", "redis")
	t.Setenv("CART_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("CART_STORAGE_KEY", "cart-v2")
	t.Setenv("CART_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("expected :9999, got %q", cfg.HTTPAddr)
	}
	if cfg.StorageBackend != StorageBackendRedis {
		t.Errorf("expected redis backend, got %q", cfg.StorageBackend)
	}
	if cfg.RedisAddr != "redis.internal:6380" {
		t.Errorf("expected redis.internal:6380, got %q", cfg.RedisAddr)
	}
	if cfg.StorageKey != "cart-v2" {
		t.Errorf("expected cart-v2, got %q", cfg.StorageKey)
	}
	if cfg.ShutdownTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("CART_STORAGE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoad_RejectsUnknownCatalogDriver(t *testing.T) {
	t.Setenv("CART_CATALOG_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown catalog driver")
	}
}
