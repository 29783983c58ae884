// Package ratelimit provides a fixed-window request limiter backed by Redis,
// so limits hold across every API replica.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Info describes the outcome of one Allow call
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a keyed request may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Info, error)
}

// RedisLimiter counts requests per key in windows of fixed length
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit requests per window
func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow increments the key's counter for the current window. The first hit in
// a window sets the expiry, so the counter resets when the window ends.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Info, error) {
	if l.limit <= 0 {
		return Info{Allowed: true}, nil
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Info{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	// A key without expiry was just created by this INCR. Plain PEXPIRE keeps
	// this working on servers older than Redis 7, which lack EXPIRE NX.
	retryAfter := ttl.Val()
	if retryAfter < 0 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return Info{}, fmt.Errorf("rate limit expiry failed: %w", err)
		}
		retryAfter = l.window
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	info := Info{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
	}
	if !info.Allowed {
		info.RetryAfter = retryAfter
		if info.RetryAfter <= 0 {
			info.RetryAfter = l.window
		}
	}
	return info, nil
}
