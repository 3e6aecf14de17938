package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(ServiceGmail)
	require.NotNil(t, rl)
	assert.Equal(t, ServiceGmail, rl.service)

	// Burst of 5 is available immediately.
	for i := 0; i < 5; i++ {
		assert.True(t, rl.limiter.Allow(), "request %d", i)
	}
	assert.False(t, rl.limiter.Allow())
}

func TestNewRateLimiter_UnknownService(t *testing.T) {
	rl := NewRateLimiter(ServiceType("other"))
	require.NotNil(t, rl)
	assert.Equal(t, ServiceType("other"), rl.service)
	assert.Equal(t, 10, rl.limiter.Burst())
}

func TestNewRateLimiterWithConfig_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 0})
	assert.Nil(t, rl)

	// A nil limiter never blocks.
	assert.NoError(t, rl.Wait(context.Background()))
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	rl := NewRateLimiter(ServiceSheets)
	rl.limiter.SetLimit(0.001)
	require.True(t, rl.limiter.Allow())
	require.True(t, rl.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "sheets rate limit")
}

func TestRateLimiter_WaitPacesAfterBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 20, BurstSize: 1})
	require.NotNil(t, rl)

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestNewRateLimiterWithConfig_MinimumBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 0})
	require.NotNil(t, rl)
	assert.Equal(t, 1, rl.limiter.Burst())
}
