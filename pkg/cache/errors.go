package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork marks a failure to reach Redis or a remote graph URL.
	// Transient cases are wrapped with [Retryable].
	ErrNetwork = errors.New("backend unreachable")

	// ErrUnknownKind is returned by Open for a [Kind] it does not know.
	ErrUnknownKind = errors.New("unknown cache kind")
)

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the wrapped error's message unchanged.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the transient cause.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether any error in err's chain is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff settings shared by the Redis backend and remote graph fetches.
// Tests shorten the delays.
var (
	retryAttempts  = 3
	retryBaseDelay = 200 * time.Millisecond
	retryMaxDelay  = 2 * time.Second
)

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], or runs out of attempts. Delays double from retryBaseDelay up
// to retryMaxDelay. A done ctx stops the loop, including before the first call.
//
// When attempts run out, the last error is returned wrapped with the attempt
// count; errors.Is still matches the original cause.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, retryMaxDelay)
	}
}
