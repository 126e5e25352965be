// Package poll repeats a readiness check with geometric backoff until it
// succeeds, fails permanently, or a deadline passes.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ErrTimeout is returned (wrapped) when the deadline passes before the check
// succeeds.
var ErrTimeout = errors.New("timed out")

// DefaultInterval is used when Options.Interval is not set.
const DefaultInterval = 100 * time.Millisecond

// Options configures Until.
type Options struct {
	Interval    time.Duration // Delay after the first failed attempt
	MaxInterval time.Duration // Backoff ceiling; values below Interval disable growth
	Timeout     time.Duration // Overall deadline (0 = bounded by ctx only)
}

// CheckFunc is one attempt. Returning done=false retries; the error, if any,
// is kept as the last failure cause. Returning done=true stops polling and
// Until returns err as-is.
type CheckFunc func(ctx context.Context) (done bool, err error)

// Until calls check until it reports done. Attempts are paced by a rate
// limiter whose interval doubles after every failed attempt up to
// MaxInterval. The first attempt runs immediately.
func Until(ctx context.Context, opts Options, check CheckFunc) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxInterval < opts.Interval {
		opts.MaxInterval = opts.Interval
	}

	pollCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	interval := opts.Interval
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	attempts := 0
	var lastErr error
	for {
		if err := limiter.Wait(pollCtx); err != nil {
			return expired(ctx, opts.Timeout, attempts, lastErr)
		}
		attempts++
		done, err := check(pollCtx)
		if done {
			return err
		}
		if err != nil {
			lastErr = err
		}
		if pollCtx.Err() != nil {
			return expired(ctx, opts.Timeout, attempts, lastErr)
		}
		if next := NextInterval(interval, opts.MaxInterval); next != interval {
			interval = next
			limiter.SetLimit(rate.Every(interval))
		}
	}
}

// NextInterval doubles cur, capped at ceiling.
func NextInterval(cur, ceiling time.Duration) time.Duration {
	next := cur * 2
	if next > ceiling || next <= 0 {
		return ceiling
	}
	return next
}

// expired builds the error for a poll that ran out of time. Caller
// cancellation is reported as the context error, not as a timeout.
func expired(ctx context.Context, timeout time.Duration, attempts int, lastErr error) error {
	if err := ctx.Err(); err != nil {
		if lastErr != nil {
			return fmt.Errorf("%w (last error: %w)", err, lastErr)
		}
		return err
	}
	if lastErr != nil {
		return fmt.Errorf("%w after %s and %d attempts (last error: %w)", ErrTimeout, timeout, attempts, lastErr)
	}
	return fmt.Errorf("%w after %s and %d attempts", ErrTimeout, timeout, attempts)
}
