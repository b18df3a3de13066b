// Package ratelimit throttles repeated actions per caller.
package ratelimit

import (
	"context"
	"time"
)

// Limits caps actions per sliding window. A zero field disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
	PerDay    int
}

// IsZero reports whether no window is limited.
func (l Limits) IsZero() bool {
	return l.PerMinute <= 0 && l.PerHour <= 0 && l.PerDay <= 0
}

type RateLimiter interface {
	// Allow records one action for key and reports whether it is within limits.
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	// Count returns the actions recorded for key in the trailing window.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
