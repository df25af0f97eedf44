package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "cart:"

// RedisStore is a redis-backed StateStore for deployments where the durable
// store lives off-box, for example kiosks fronting one shopper profile.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, stateKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, stateKeyPrefix+key, payload, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
