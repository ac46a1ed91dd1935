package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const storageOpTimeout = 500 * time.Millisecond

// RedisStorage implements fiber.Storage on top of Redis. It fails safe: when Redis is
// unreachable reads behave like misses and writes are dropped.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage scopes keys under prefix.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(k string) string {
	return s.prefix + k
}

// Get returns the stored value or nil.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if s == nil || s.client == nil || key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, nil
	}
	return val, nil
}

// Set stores val with an optional expiry.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if s == nil || s.client == nil || key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	_ = s.client.Set(ctx, s.key(key), val, exp).Err()
	return nil
}

// Delete removes key.
func (s *RedisStorage) Delete(key string) error {
	if s == nil || s.client == nil || key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	_ = s.client.Del(ctx, s.key(key)).Err()
	return nil
}

// Reset removes every key under the prefix.
func (s *RedisStorage) Reset() error {
	if s == nil || s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = s.client.Del(ctx, iter.Val()).Err()
	}
	return nil
}

// Close is a no-op; the client is owned by Redis.
func (s *RedisStorage) Close() error {
	return nil
}
