package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// RetryConfig defines configuration for retry operations
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	Jitter         bool
	RetryIf        func(error) bool
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         true,
		RetryIf:        IsRetryableError,
	}
}

// NewRetryConfig builds a retry configuration from user settings, filling zero values with defaults
func NewRetryConfig(maxAttempts int, backoff, maxBackoff time.Duration) *RetryConfig {
	config := DefaultRetryConfig()
	if maxAttempts > 0 {
		config.MaxAttempts = maxAttempts
	}
	if backoff > 0 {
		config.InitialBackoff = backoff
	}
	if maxBackoff > 0 {
		config.MaxBackoff = maxBackoff
	}
	return config
}

// Retry executes a function with retry logic
func Retry(ctx context.Context, config *RetryConfig, fn func() error) error {
	_, err := RetryWithResult(ctx, config, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// RetryWithResult executes a function with retry logic and returns a result
func RetryWithResult[T any](ctx context.Context, config *RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	if config == nil {
		config = DefaultRetryConfig()
	}
	retryIf := config.RetryIf
	if retryIf == nil {
		retryIf = IsRetryableError
	}

	logger := GetGlobalLogger().WithComponent("retry")
	var lastError error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Infof("Operation succeeded on attempt %d", attempt)
			}
			return result, nil
		}
		lastError = err

		if !retryIf(err) {
			logger.Debugf("Error not retryable: %v", err)
			return zero, err
		}

		if attempt == config.MaxAttempts {
			logger.Warnf("All %d attempts failed, giving up", config.MaxAttempts)
			break
		}

		backoff := config.calculateBackoff(attempt)
		logger.Warnf("Attempt %d failed, retrying in %v: %v", attempt, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", config.MaxAttempts, lastError)
}

// calculateBackoff returns the exponential backoff for attempt, capped at MaxBackoff with +/-5% jitter
func (c *RetryConfig) calculateBackoff(attempt int) time.Duration {
	factor := c.BackoffFactor
	if factor <= 0 {
		factor = 2.0
	}

	backoff := time.Duration(float64(c.InitialBackoff) * math.Pow(factor, float64(attempt-1)))
	if c.MaxBackoff > 0 && backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}

	if c.Jitter {
		jitterRange := time.Duration(float64(backoff) * 0.1)
		if jitterRange > 0 {
			backoff += time.Duration(rand.Int63n(int64(jitterRange))) - jitterRange/2
		}
	}

	if backoff < 0 {
		backoff = c.InitialBackoff
	}
	return backoff
}

var retryablePatterns = []string{
	"connection reset by peer",
	"connection refused",
	"no such host",
	"temporary failure",
	"timeout",
	"rate limited",
	"service unavailable",
	"bad gateway",
}

// IsRetryableError reports whether err is worth another attempt.
// HTTP errors retry on 429 and 5xx; context errors never retry.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	type temporary interface {
		Temporary() bool
	}
	var te temporary
	if errors.As(err, &te) && te.Temporary() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
