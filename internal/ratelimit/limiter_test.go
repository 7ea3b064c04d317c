package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 2, time.Second)
	ctx := context.Background()

	t.Run("LimitWithinWindow", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			ok, err := l.Allow(ctx, "alice")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		ok, err := l.Allow(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		assert.Equal(t, time.Second, s.TTL("shareit:rate_limit:alice"))
		s.FastForward(2 * time.Second)

		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("KeyWithoutTTLIsRearmed", func(t *testing.T) {
		require.NoError(t, s.Set("shareit:rate_limit:dave", "5"))
		assert.Zero(t, s.TTL("shareit:rate_limit:dave"))

		ok, err := l.Allow(ctx, "dave")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, time.Second, s.TTL("shareit:rate_limit:dave"))

		s.FastForward(2 * time.Second)
		ok, err = l.Allow(ctx, "dave")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RedisDown", func(t *testing.T) {
		s.Close()
		_, err := l.Allow(ctx, "carol")
		assert.Error(t, err)
	})
}

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	// A negligible refill rate makes the burst the whole budget during the test.
	l := NewMemoryLimiter(0.001, 3)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "alice")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "bob")
	assert.True(t, ok)
}
