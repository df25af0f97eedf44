package port

import "context"

// StateStore is the durable key-value capability the cart consumes. Any
// store that survives process restarts qualifies: a local file, an embedded
// KV database, or a shared cache.
type StateStore interface {
	// Get fetches the payload stored under key. ok is false when the key
	// has never been written; that is not an error.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores payload under key, replacing any previous value.
	Set(ctx context.Context, key string, payload []byte) error

	// Close releases the underlying store.
	Close() error
}
