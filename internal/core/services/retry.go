package services

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// RetryPolicy bounds retries against external collaborators.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// withRetry runs op with exponential backoff. Validation-class errors are
// never retried; everything else is retried up to MaxAttempts total attempts.
func withRetry(ctx context.Context, policy RetryPolicy, name string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.MaxInterval = policy.MaxInterval

	attempts := uint64(policy.MaxAttempts)
	if attempts == 0 {
		attempts = 1
	}

	attempt := 0
	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		logger.Warn("%s attempt %d failed: %v", name, attempt, err)
		return err
	}

	return backoff.Retry(wrapped, backoff.WithMaxRetries(backoff.WithContext(b, ctx), attempts-1))
}

// retryable reports whether an error class is worth retrying.
// Caller mistakes will fail identically every time.
func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDegenerateVector),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
