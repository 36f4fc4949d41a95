package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a small JSON read-through cache. A nil *RedisClient is
// valid and disables caching, so callers never need to branch on whether a
// cache is configured.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int, ttl time.Duration) *RedisClient {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisClient{client: c, ttl: ttl}
}

func (r *RedisClient) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}

// GetJSON loads a cached value into dest, reporting whether the key was
// present.
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r == nil {
		return false, nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

func (r *RedisClient) SetJSON(ctx context.Context, key string, value interface{}) error {
	if r == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, r.ttl).Err()
}

func (r *RedisClient) Del(ctx context.Context, keys ...string) error {
	if r == nil {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
