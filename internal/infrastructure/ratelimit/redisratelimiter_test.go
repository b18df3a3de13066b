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

func setupTestLimiter(t *testing.T) (*RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client), mr
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		allowed int
	}{
		{"per minute", Limits{PerMinute: 5}, 5},
		{"per hour", Limits{PerHour: 3}, 3},
		{"per day", Limits{PerDay: 4}, 4},
		{"tightest window wins", Limits{PerMinute: 5, PerHour: 2, PerDay: 20}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter, _ := setupTestLimiter(t)
			ctx := context.Background()

			for i := 0; i < tt.allowed; i++ {
				ok, err := limiter.Allow(ctx, "user:1", tt.limits)
				require.NoError(t, err)
				assert.True(t, ok, "request %d should be allowed", i+1)
			}

			ok, err := limiter.Allow(ctx, "user:1", tt.limits)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := setupTestLimiter(t)
	ctx := context.Background()
	limits := Limits{PerMinute: 1}

	ok, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "user:2", limits)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	limiter, _ := setupTestLimiter(t)
	ctx := context.Background()
	now := time.Now()
	limiter.now = func() time.Time { return now }
	limits := Limits{PerMinute: 2}

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "user:1", limits)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, err = limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_RejectedAttemptsAreNotRecorded(t *testing.T) {
	limiter, _ := setupTestLimiter(t)
	ctx := context.Background()
	limits := Limits{PerMinute: 1}

	_, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "user:1", limits)
		require.NoError(t, err)
	}

	n, err := limiter.Count(ctx, "user:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter, mr := setupTestLimiter(t)
	ctx := context.Background()
	limits := Limits{PerMinute: 1, PerHour: 1}

	ok, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, mr.Keys(), 2)

	require.NoError(t, limiter.Reset(ctx, "user:1"))
	assert.Empty(t, mr.Keys())

	ok, err = limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_UnavailableRedis(t *testing.T) {
	limiter, mr := setupTestLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "user:1", Limits{PerMinute: 1})
	assert.Error(t, err)
}

func TestLimits_IsZero(t *testing.T) {
	assert.True(t, Limits{}.IsZero())
	assert.False(t, Limits{PerDay: 1}.IsZero())
}
