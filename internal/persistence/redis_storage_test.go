package persistence

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

var _ fiber.Storage = (*RedisStorage)(nil)

func TestRedisStorageFailsSafe(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	storage := NewRedisStorage(client, "test:")

	val, err := storage.Get("k")
	assert.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, storage.Set("k", []byte("v"), time.Minute))
	assert.NoError(t, storage.Delete("k"))
	assert.NoError(t, storage.Reset())
	assert.NoError(t, storage.Close())
}

func TestNilStorageIsInert(t *testing.T) {
	var storage *RedisStorage
	val, err := storage.Get("k")
	assert.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, storage.Set("k", []byte("v"), 0))
}
