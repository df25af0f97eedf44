// Package cell provides a typed mutable slot bound to one key of a durable
// key-value store.
package cell

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/rl1809/shopping-cart/internal/port"
)

// Codec serializes cell values for storage.
type Codec[T any] interface {
	Marshal(value T) ([]byte, error)
	Unmarshal(payload []byte, value *T) error
}

// JSONCodec encodes values with encoding/json. Unknown fields in stored
// payloads are ignored, so older or richer payload shapes stay readable.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Marshal(value T) ([]byte, error) { return json.Marshal(value) }

func (JSONCodec[T]) Unmarshal(payload []byte, value *T) error {
	return json.Unmarshal(payload, value)
}

// Option configures a Cell.
type Option[T any] func(*Cell[T])

// WithCodec replaces the default JSON codec.
func WithCodec[T any](codec Codec[T]) Option[T] {
	return func(c *Cell[T]) { c.codec = codec }
}

// Cell is a typed mutable slot backed by one key of a StateStore. The value
// is read from the store once, at construction, and written back on every
// change. Storage failures never propagate: reads fall back to the default
// and a failed write leaves the in-memory value authoritative for the
// session.
type Cell[T any] struct {
	store port.StateStore
	key   string
	codec Codec[T]

	mu    sync.RWMutex
	value T
}

// New builds a cell bound to key and performs the one initial read. When the
// key is absent, unreadable, or holds an undecodable payload, the cell
// starts at defaultValue without writing it back; the store is next touched
// by the first Set.
func New[T any](ctx context.Context, store port.StateStore, key string, defaultValue T, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{
		store: store,
		key:   key,
		codec: JSONCodec[T]{},
		value: defaultValue,
	}
	for _, opt := range opts {
		opt(c)
	}

	payload, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("cell %q: read failed, using default: %v", key, err)
		return c
	}
	if !ok {
		return c
	}

	var stored T
	if err := c.codec.Unmarshal(payload, &stored); err != nil {
		log.Printf("cell %q: undecodable payload, using default: %v", key, err)
		return c
	}
	c.value = stored
	return c
}

// Get returns the current value. Pure in-memory read.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and writes it through to the store. Exactly one
// store write happens per call, in commit order; encode and write failures
// are logged and swallowed.
func (c *Cell[T]) Set(ctx context.Context, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value

	payload, err := c.codec.Marshal(value)
	if err != nil {
		log.Printf("cell %q: encode failed, value not persisted: %v", c.key, err)
		return
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		log.Printf("cell %q: write failed, value not persisted: %v", c.key, err)
	}
}

// Key returns the storage key the cell is bound to.
func (c *Cell[T]) Key() string { return c.key }
