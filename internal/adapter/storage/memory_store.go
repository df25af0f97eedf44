package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory StateStore for tests and ephemeral runs. It
// clones payloads on both writes and reads so callers never alias stored
// bytes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return clonePayload(payload), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = clonePayload(payload)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func clonePayload(payload []byte) []byte {
	out := make([]byte, len(payload))
	copy(out, payload)
	return out
}
