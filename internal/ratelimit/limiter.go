// Package ratelimit throttles write requests per caller.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by every instance behind the same Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "shareit:rate_limit:",
	}
}

// incrWindow counts a hit and arms the window expiry in one step.
// A key left without a TTL is re-armed instead of blocking its caller forever.
var incrWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrWindow.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	return count <= int64(l.limit), nil
}

// MemoryLimiter keeps one token bucket per key in process memory.
// Used when no Redis is configured; limits are per instance.
type MemoryLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &MemoryLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.getLimiter(key).Allow(), nil
}

func (l *MemoryLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}
