package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript implements check-and-consume over a sorted set of
// accepted-request timestamps. Everything older than the window is dropped,
// the survivors are counted, and the request is admitted only when the count
// is still below the maximum. Runs as a single Lua script so concurrent
// callers on the same key serialize inside redis.
//
// KEYS[1] = limiter key
// ARGV[1] = now (unix milliseconds)
// ARGV[2] = window (milliseconds)
// ARGV[3] = max accepted requests per window
// ARGV[4] = unique member for this request
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= max then
	return 0
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// RedisLimiter is a sliding-window rate limiter backed by redis.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string

	// now is swappable for deterministic tests
	now func() time.Time
}

// NewRedisLimiter creates a limiter allowing max requests per key per rolling
// window.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:tweet:",
		now:    time.Now,
	}
}

// Allow reports whether the caller identified by key may proceed, consuming
// one slot of their window when it does.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	nowMs := l.now().UnixMilli()
	windowMs := l.window.Milliseconds()

	res, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		nowMs,
		windowMs,
		l.max,
		uuid.NewString(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return res == 1, nil
}
