// Package retry runs operations against flaky backends with exponential
// back-off. It is shared by the catalog sources and the key-value stores.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Policy holds the parameters of the retry strategy.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *slog.Logger
}

type stopError struct {
	err error
}

func (e stopError) Error() string { return e.err.Error() }
func (e stopError) Unwrap() error { return e.err }

// Stop marks err as final: Do returns it unwrapped without retrying.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return stopError{err: err}
}

// Do executes fn with exponential back-off. Errors marked with Stop and
// context errors are returned without retrying.
func (p Policy) Do(ctx context.Context, operation string, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		var stop stopError
		if errors.As(lastErr, &stop) {
			return stop.err
		}
		if ctx.Err() != nil {
			return lastErr
		}

		if attempt < attempts {
			logger.Warn("retrying",
				"operation", operation,
				"attempt", attempt,
				"max_attempts", attempts,
				"delay", delay,
				"err", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}
