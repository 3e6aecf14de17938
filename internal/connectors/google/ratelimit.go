package google

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceGmail is the Gmail API service.
	ServiceGmail ServiceType = "gmail"
	// ServiceSheets is the Google Sheets API service.
	ServiceSheets ServiceType = "sheets"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceGmail:  {RequestsPerSecond: 2.0, BurstSize: 5}, // Conservative for quota units
	ServiceSheets: {RequestsPerSecond: 1.0, BurstSize: 2}, // 60 writes/min/user
}

// RateLimiter paces requests to a Google API with a token bucket.
// It never retries; a request that fails is reported as is.
// A nil *RateLimiter does not limit.
type RateLimiter struct {
	limiter *rate.Limiter
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		// Default fallback
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}

	rl := NewRateLimiterWithConfig(cfg)
	rl.service = service
	return rl
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
// Returns nil when RequestsPerSecond is not positive, which disables pacing.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// The error names the service when the wait is cut short.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.limiter.Wait(ctx); err != nil {
		if r.service != "" {
			return fmt.Errorf("waiting for %s rate limit: %w", r.service, err)
		}
		return fmt.Errorf("waiting for rate limit: %w", err)
	}
	return nil
}
