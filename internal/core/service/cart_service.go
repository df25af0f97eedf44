package service

import (
	"context"
	"sync"

	"github.com/rl1809/shopping-cart/internal/core/cell"
	"github.com/rl1809/shopping-cart/internal/core/domain"
)

// CartService owns the cart lines and the open/closed state of the cart
// panel. All mutations run under the write lock and compute the next
// snapshot from the latest committed one, so overlapping updates apply in
// order and none are lost. The panel flag is process-local and never
// persisted; the lines live in the state cell and survive restarts.
type CartService struct {
	mu     sync.RWMutex
	lines  *cell.Cell[[]domain.CartLine]
	isOpen bool
}

func NewCartService(ctx context.Context, lines *cell.Cell[[]domain.CartLine]) *CartService {
	s := &CartService{lines: lines}

	// Restored payloads may predate the current invariants (zero
	// quantities, duplicate ids). Normalize only ever drops lines, so a
	// length change is the exact signal that something was repaired.
	restored := lines.Get()
	normalized := domain.Normalize(restored)
	if len(normalized) != len(restored) {
		lines.Set(ctx, normalized)
	}

	return s
}

func (s *CartService) Items() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.lines.Get()
	out := make([]domain.CartLine, len(snapshot))
	copy(out, snapshot)
	return out
}

func (s *CartService) ItemQuantity(itemID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Quantity(s.lines.Get(), itemID)
}

func (s *CartService) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TotalQuantity(s.lines.Get())
}

func (s *CartService) IncreaseQuantity(ctx context.Context, itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines.Set(ctx, domain.Increase(s.lines.Get(), itemID))
}

func (s *CartService) DecreaseQuantity(ctx context.Context, itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lines.Get()
	if domain.Quantity(current, itemID) == 0 {
		return
	}
	s.lines.Set(ctx, domain.Decrease(current, itemID))
}

func (s *CartService) RemoveItem(ctx context.Context, itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.lines.Get()
	if domain.Quantity(current, itemID) == 0 {
		return
	}
	s.lines.Set(ctx, domain.Remove(current, itemID))
}

func (s *CartService) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = true
}

func (s *CartService) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = false
}

func (s *CartService) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isOpen
}
