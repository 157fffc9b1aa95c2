package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a keyed store backed by a Redis hash with JSON-encoded values.
// It honors the same contract as Memory — per-operation atomicity,
// last-writer-wins on concurrent same-id updates — while surviving process
// restarts. Selected via store.backend = "redis".
type Redis[T any] struct {
	client *redis.Client
	key    string
}

// NewRedis creates a store over the given hash key, e.g. "notigate:templates".
func NewRedis[T any](client *redis.Client, key string) *Redis[T] {
	return &Redis[T]{client: client, key: key}
}

// Get retrieves a value by id. The boolean reports presence.
func (r *Redis[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	data, err := r.client.HGet(ctx, r.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis hget %s/%s: %w", r.key, id, err)
	}

	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return zero, false, fmt.Errorf("decoding stored value %s/%s: %w", r.key, id, err)
	}
	return *v, true, nil
}

// Set writes a value under the given id, replacing any previous value.
func (r *Redis[T]) Set(ctx context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding value %s/%s: %w", r.key, id, err)
	}
	if err := r.client.HSet(ctx, r.key, id, data).Err(); err != nil {
		return fmt.Errorf("redis hset %s/%s: %w", r.key, id, err)
	}
	return nil
}

// Delete removes a value by id, reporting whether it existed.
func (r *Redis[T]) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.client.HDel(ctx, r.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("redis hdel %s/%s: %w", r.key, id, err)
	}
	return n > 0, nil
}

// List returns all stored values.
func (r *Redis[T]) List(ctx context.Context) ([]T, error) {
	entries, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", r.key, err)
	}

	out := make([]T, 0, len(entries))
	for id, data := range entries {
		v := new(T)
		if err := json.Unmarshal([]byte(data), v); err != nil {
			return nil, fmt.Errorf("decoding stored value %s/%s: %w", r.key, id, err)
		}
		out = append(out, *v)
	}
	return out, nil
}
