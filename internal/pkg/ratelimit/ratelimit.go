// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by Redis.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// CheckTokenIssue checks whether another credential may be issued for the
// given client IP and email.
func (l *Limiter) CheckTokenIssue(ctx context.Context, ip, email string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:token:%s:%s", ip, email)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment token issue attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		l.client.Expire(ctx, key, 15*time.Minute)
	}

	maxAttempts := int64(10)
	remaining := maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	// Allow up to 10 issued tokens per 15 minutes
	return count <= maxAttempts, remaining, nil
}

// Reset clears the counter for the given client IP and email.
func (l *Limiter) Reset(ctx context.Context, ip, email string) error {
	key := fmt.Sprintf("ratelimit:token:%s:%s", ip, email)
	return l.client.Del(ctx, key).Err()
}
