package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisLocker_Defaults(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	l := NewRedisLocker(rdb, RedisConfig{Prefix: "  "})

	assert.Equal(t, defaultTTL, l.ttl)
	assert.Equal(t, defaultWait, l.wait)
	assert.Equal(t, defaultRetryDelay, l.retryDelay)
	assert.Equal(t, defaultPrefix, l.prefix)
}

func TestRedisLocker_BackendUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	l := NewRedisLocker(rdb, RedisConfig{Wait: 2 * time.Second})

	release, err := l.Acquire(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
	assert.Nil(t, release)
}
