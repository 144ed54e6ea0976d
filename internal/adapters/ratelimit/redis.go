package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:contact:"

// RedisLimiter is a fixed-window counter shared across instances through
// Redis. INCR starts the window on the first hit and PEXPIRE bounds it; the
// key expiring is the window reset.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRedisLimiter connects to redisURL and returns a shared fixed-window
// limiter allowing max requests per client ID within each window.
func NewRedisLimiter(redisURL string, max int, window time.Duration) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisLimiter{client: client, max: max, window: window}, nil
}

// Allow implements domain.RateLimiter. Errors are returned to the caller,
// which decides the failure policy (the contact handler fails open).
func (l *RedisLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := redisKeyPrefix + clientID
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := l.client.PExpire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("pexpire %s: %w", key, err)
		}
	}
	return n <= int64(l.max), nil
}

// Close releases the underlying Redis connection.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
