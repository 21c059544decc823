package iotkit

import (
	"context"
	"time"
)

// Retry is a bounded attempt policy with a fixed delay between attempts.
// The policy itself stays pure; retry reporting goes through OnRetry so the
// caller decides how (and whether) retries are logged.
type Retry struct {
	Attempts int
	Delay    time.Duration
	// OnRetry is called before every attempt after the first, with the
	// 1-based number of the attempt about to run and the previous error.
	OnRetry func(attempt int, err error)
}

// Do runs op until it succeeds or attempts are exhausted, sleeping Delay
// between attempts. The last error is returned unchanged. Errors for which
// IsTransport is false are not retried.
func (r Retry) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if r.OnRetry != nil {
				r.OnRetry(attempt, err)
			}
			timer := time.NewTimer(r.Delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
		err = op(ctx, attempt)
		if err == nil {
			return nil
		}
		if !IsTransport(err) {
			return err
		}
	}
	return err
}
