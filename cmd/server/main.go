package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/rl1809/shopping-cart/internal/adapter/handler"
	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/config"
	"github.com/rl1809/shopping-cart/internal/core/cell"
	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize state store
	store, err := openStateStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open state store: %v", err)
	}
	log.Printf("state store ready: %s", cfg.StorageBackend)

	// Initialize catalog
	catalog, err := storage.OpenCatalog(ctx, cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	log.Printf("catalog ready: %s", cfg.CatalogDriver)

	// Restore cart state
	lines := cell.New[[]domain.CartLine](ctx, store, cfg.StorageKey, []domain.CartLine{})
	cartService := service.NewCartService(ctx, lines)
	log.Printf("restored cart %q: %d items across %d lines", lines.Key(), cartService.TotalQuantity(), len(cartService.Items()))

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(cartService, catalog)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", httpHandler.HealthCheck)
	mux.HandleFunc("/api/cart", httpHandler.Cart)
	mux.HandleFunc("/api/cart/quantity", httpHandler.ItemQuantity)
	mux.HandleFunc("/api/cart/increase", httpHandler.IncreaseQuantity)
	mux.HandleFunc("/api/cart/decrease", httpHandler.DecreaseQuantity)
	mux.HandleFunc("/api/cart/remove", httpHandler.RemoveItem)
	mux.HandleFunc("/api/cart/open", httpHandler.OpenCart)
	mux.HandleFunc("/api/cart/close", httpHandler.CloseCart)
	mux.HandleFunc("/api/products", httpHandler.Products)
	mux.HandleFunc("/api/product", httpHandler.Product)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	if err := catalog.Close(); err != nil {
		log.Printf("catalog close error: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Printf("state store close error: %v", err)
	}
	log.Println("connections closed")
}

func openStateStore(ctx context.Context, cfg config.Config) (port.StateStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendBolt:
		return storage.OpenBolt(cfg.StoragePath)
	case config.StorageBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisStore(rdb), nil
	case config.StorageBackendMemory:
		log.Println("memory store selected: cart state will not survive restarts")
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
