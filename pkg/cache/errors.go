package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks transport failures against a remote backend (timeouts,
// refused connections). The Redis backend wraps these as retryable; a
// layout or artifact is never worth failing a command over when the
// backend merely blinked.
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient. RetryWithBackoff retries
// only errors carrying this marker; everything else fails fast.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries the RetryableError marker
// anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times, doubling the delay from 1s
// between attempts. Non-retryable errors and context cancellation stop
// the loop immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
