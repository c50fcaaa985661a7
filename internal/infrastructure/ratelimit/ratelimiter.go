package ratelimit

import (
	"context"
	"time"
)

// Limit allows Requests per sliding Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the limit.
	Allow(ctx context.Context, key string, limit Limit) (bool, error)
	// GetRemaining returns how many more requests key may make in the window.
	GetRemaining(ctx context.Context, key string, limit Limit) (int64, error)
	Reset(ctx context.Context, key string) error
}
