// Package retry provides the bounded-attempt policy shared by the
// generation stages. Each caller supplies its own attempt budget and a
// predicate deciding which errors are worth another attempt.
package retry

import (
	"context"
	"time"
)

type Policy struct {
	MaxAttempts int
	// Delay between attempts. Zero means retry immediately.
	Delay time.Duration
	// Retryable reports whether the error may succeed on a later attempt.
	// Nil means every error is retryable.
	Retryable func(error) bool
}

// Do runs fn up to p.MaxAttempts times and returns the first successful
// value. The attempt number passed to fn is 1-based. A non-retryable
// error, a cancelled context, or an exhausted budget returns the last
// error seen.
func Do[T any](ctx context.Context, p Policy, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := fn(attempt)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if attempt == p.MaxAttempts {
			break
		}

		if p.Delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(p.Delay):
			}
		}
	}
	return zero, lastErr
}
