package adapter

import (
	"context"
	"errors"

	"quiz-deck/internal/cache"
	"quiz-deck/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisOverrideStore implements domain.OverrideStore on a Redis client.
// Keys are namespaced with cache.OverrideKey so the database can be shared.
type RedisOverrideStore struct {
	client *redis.Client
}

// NewRedisOverrideStore expects a connected *redis.Client.
func NewRedisOverrideStore(client *redis.Client) domain.OverrideStore {
	return &RedisOverrideStore{client: client}
}

// Get translates redis.Nil to domain.ErrStoreMiss.
func (r *RedisOverrideStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, cache.OverrideKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrStoreMiss
		}
		return "", err
	}
	return val, nil
}

// Set stores the value without expiration; overrides live until deleted.
func (r *RedisOverrideStore) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, cache.OverrideKey(key), value, 0).Err()
}

func (r *RedisOverrideStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, cache.OverrideKey(key)).Err()
}

func (r *RedisOverrideStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
