package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration for outbound requests
type Config struct {
	RequestsPerSecond int `json:"requestsPerSecond"`
	MaxRetries        int `json:"maxRetries"`
	InitialBackoffMs  int `json:"initialBackoffMs"`
	MaxBackoffMs      int `json:"maxBackoffMs"`
}

// DefaultConfig returns the default rate limit configuration
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 2,
		MaxRetries:        3,
		InitialBackoffMs:  100,
		MaxBackoffMs:      30000,
	}
}

// RateLimiter throttles outbound requests using a token bucket
type RateLimiter struct {
	config  Config
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter with the given config
func NewRateLimiter(config Config) *RateLimiter {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultConfig().RequestsPerSecond
	}
	return &RateLimiter{
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// GetConfig returns the current configuration
func (r *RateLimiter) GetConfig() Config {
	return r.config
}

// Throttle blocks until the next request is allowed or the context ends.
// Call this before making a request.
func (r *RateLimiter) Throttle(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
