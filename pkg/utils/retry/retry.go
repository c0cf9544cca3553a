package retry

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Backoff returns the wait after the given failed attempt (1-based)
type Backoff func(attempt int) time.Duration

// Linear waits attempt × base: base, 2×base, 3×base, ...
func Linear(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// Do calls fn until it succeeds or maxAttempts calls have failed
//
// Behavior:
//   - Attempt numbers passed to fn start at 1
//   - After a failure other than the last, waits backoff(attempt)
//   - Returns the last error wrapped with the attempt count
//   - Stops early with ctx.Err() when ctx is cancelled while waiting
func Do(ctx context.Context, maxAttempts int, backoff Backoff, fn func(ctx context.Context, attempt int) error) error {
	logger := ctxlog.From(ctx)
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}

		if attempt == maxAttempts {
			break
		}

		wait := backoff(attempt)
		logger.Warn("Attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"wait", wait,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return goerr.Wrap(ctx.Err(), "retry cancelled", goerr.V("attempt", attempt))
		case <-timer.C:
		}
	}

	return goerr.Wrap(err, "all attempts failed", goerr.V("attempts", maxAttempts))
}
