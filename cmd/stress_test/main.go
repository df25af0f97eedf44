package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/core/cell"
	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
)

const (
	cartKey        = "stress-cart"
	itemID         = int64(7)
	increaseEvents = 200
	decreaseEvents = 50
)

func main() {
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, "cart:"+cartKey)

	// Initialize store and service
	store := storage.NewRedisStore(rdb)
	lines := cell.New[[]domain.CartLine](ctx, store, cartKey, []domain.CartLine{})
	cartService := service.NewCartService(ctx, lines)

	// Spawn concurrent increase events
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < increaseEvents; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cartService.IncreaseQuantity(ctx, itemID)
		}()
	}
	wg.Wait()

	// Then a concurrent decrease wave
	for i := 0; i < decreaseEvents; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cartService.DecreaseQuantity(ctx, itemID)
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)

	want := increaseEvents - decreaseEvents
	got := cartService.ItemQuantity(itemID)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Increase Events:  %d\n", increaseEvents)
	fmt.Printf("Decrease Events:  %d\n", decreaseEvents)
	fmt.Printf("Final Quantity:   %d\n", got)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	// Assertions
	if got == want {
		fmt.Printf("PASS: In-memory quantity is %d\n", want)
	} else {
		fmt.Printf("FAIL: Expected quantity %d, got %d\n", want, got)
	}

	// Verify the persisted payload in Redis
	payload, err := rdb.Get(ctx, "cart:"+cartKey).Bytes()
	if err != nil {
		log.Fatalf("failed to read persisted cart: %v", err)
	}

	var persisted []domain.CartLine
	if err := json.Unmarshal(payload, &persisted); err != nil {
		log.Fatalf("persisted cart does not decode: %v", err)
	}

	if len(persisted) == 1 && persisted[0].ItemID == itemID && persisted[0].Quantity == want {
		fmt.Printf("PASS: Redis holds [{%d %d}]\n", itemID, want)
	} else {
		fmt.Printf("FAIL: Expected Redis [{%d %d}], got %v\n", itemID, want, persisted)
	}
}
