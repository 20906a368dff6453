// Package retry provides bounded retry and polling for flaky operations.
// Every call owns its own attempt counter; there is no shared state, so the
// helpers are safe to use from any number of goroutines at once.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPolicy is returned before any attempt is made when a policy is
// misconfigured.
var ErrInvalidPolicy = errors.New("retry: max attempts must be positive")

// Policy bounds a retry or poll loop.
type Policy struct {
	// MaxAttempts is the total number of tries, inclusive of the first.
	MaxAttempts int
	// Delay is the fixed pause between attempts. Zero means retry
	// immediately.
	Delay time.Duration
}

func (p Policy) validate() error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// PredicateError is returned by Poll when the attempt budget is exhausted
// without the predicate ever holding. LastResult carries the final observed
// value so callers keep their diagnostic context.
type PredicateError[T any] struct {
	Attempts   int
	LastResult T
}

func (e *PredicateError[T]) Error() string {
	return fmt.Sprintf("retry: condition not met after %d attempts", e.Attempts)
}

// Do invokes op until it returns a nil error or the attempt budget runs out.
// On success the result is returned immediately. After exhaustion the last
// error is returned, wrapped with the attempt count; earlier errors are
// discarded since the most recent one carries the freshest diagnostic.
// Cancelling ctx stops the loop between attempts.
func Do[T any](ctx context.Context, policy Policy, op func() (T, error)) (T, error) {
	var zero T
	if err := policy.validate(); err != nil {
		return zero, err
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}
		if err := wait(ctx, policy.Delay); err != nil {
			return zero, err
		}
	}
	return zero, fmt.Errorf("retry: %d attempts exhausted: %w", policy.MaxAttempts, lastErr)
}

// Poll invokes op until pred accepts its result or the attempt budget runs
// out, returning the first accepted result. An error from op is a hard
// failure of the whole poll and propagates immediately without further
// attempts; only a false predicate means "try again". Exhaustion returns a
// *PredicateError carrying the last result.
func Poll[T any](ctx context.Context, policy Policy, op func() (T, error), pred func(T) bool) (T, error) {
	var zero T
	if err := policy.validate(); err != nil {
		return zero, err
	}

	var last T
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		result, err := op()
		if err != nil {
			return zero, err
		}
		if pred(result) {
			return result, nil
		}
		last = result

		if attempt == policy.MaxAttempts {
			break
		}
		if err := wait(ctx, policy.Delay); err != nil {
			return zero, err
		}
	}
	return zero, &PredicateError[T]{Attempts: policy.MaxAttempts, LastResult: last}
}

// wait pauses for d or until ctx is cancelled, whichever comes first. A zero
// delay still checks for cancellation so an abandoned caller never triggers
// another attempt.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
