package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles calls to the statusphere API and to notification webhooks
type RateLimiter struct {
	limiter *rate.Limiter
	timeout time.Duration
	name    string
	mu      sync.RWMutex
}

// RateLimiterConfig contains configuration for rate limiting
type RateLimiterConfig struct {
	RequestsPerSecond float64       `json:"requests_per_second"`
	Burst             int           `json:"burst"`
	Timeout           time.Duration `json:"timeout"`
	Name              string        `json:"name,omitempty"`
}

// DefaultRateLimiterConfig returns a default rate limiter configuration
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		Timeout:           30 * time.Second,
		Name:              "default",
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config *RateLimiterConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimiterConfig()
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		timeout: timeout,
		name:    config.Name,
	}
}

// Wait blocks until the rate limiter allows a request or the context is cancelled.
// Contexts without a deadline are bounded by the limiter timeout.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.RLock()
	limiter, timeout, name := rl.limiter, rl.timeout, rl.name
	rl.mu.RUnlock()

	waitCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	if err := limiter.Wait(waitCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("rate limiter %s: timeout after %v", name, time.Since(start))
		}
		return fmt.Errorf("rate limiter %s: %w", name, err)
	}

	if waited := time.Since(start); waited > time.Millisecond {
		GetGlobalLogger().WithComponent("ratelimit").Debugf("Rate limiter %s: waited %v for permission", name, waited)
	}

	return nil
}

// GetStats returns current statistics about the rate limiter
func (rl *RateLimiter) GetStats() RateLimiterStats {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return RateLimiterStats{
		Name:    rl.name,
		Limit:   float64(rl.limiter.Limit()),
		Burst:   rl.limiter.Burst(),
		Timeout: rl.timeout,
	}
}

// RateLimiterStats contains statistics about the rate limiter
type RateLimiterStats struct {
	Name    string        `json:"name"`
	Limit   float64       `json:"limit"`
	Burst   int           `json:"burst"`
	Timeout time.Duration `json:"timeout"`
}

// String returns a string representation of the rate limiter stats
func (s RateLimiterStats) String() string {
	return fmt.Sprintf("RateLimit[%s]: %.2f req/s, burst=%d, timeout=%v",
		s.Name, s.Limit, s.Burst, s.Timeout)
}

