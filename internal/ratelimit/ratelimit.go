package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by redis. A nil Limiter allows
// everything, so callers do not branch on whether redis is configured.
type Limiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func New(client *redis.Client, window time.Duration, max int) *Limiter {
	return &Limiter{client: client, window: window, max: max}
}

// Allow increments the counter for key and reports whether the caller is
// still inside the window budget.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.max), nil
}
