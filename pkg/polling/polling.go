// Package polling implements interval polling with explicit cancellation.
// It exists so that completion of asynchronous operations can be observed by
// repeatedly reading state, with the interval and the cancellation scope as
// first-class parameters rather than ambient timers.
package polling

import (
	"context"
	"time"
)

// CheckFunc reads current state and reports whether polling should stop.
// It must be side-effect free; polls carry no ordering guarantee beyond
// eventual convergence to the true state.
type CheckFunc[T any] func(ctx context.Context) (result T, done bool, err error)

// Wait polls check on the given interval until it reports done, returns an
// error, or ctx is cancelled. The first check runs immediately, so callers
// that are already converged never wait a full interval. The ticker is always
// stopped before return; no timers outlive the call.
func Wait[T any](ctx context.Context, interval time.Duration, check CheckFunc[T]) (T, error) {
	var zero T

	result, done, err := check(ctx)
	if err != nil {
		return zero, err
	}
	if done {
		return result, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ticker.C:
			result, done, err := check(ctx)
			if err != nil {
				return zero, err
			}
			if done {
				return result, nil
			}
		}
	}
}
