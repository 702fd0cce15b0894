package ai

import (
	"context"
	"time"
)

// DefaultMaxAttempts is the total number of calls, first attempt included
const DefaultMaxAttempts = 3

// DefaultBackoffBase is the wait after the first failed attempt
const DefaultBackoffBase = time.Second

// RetryPolicy decides how often and how long to wait between attempts.
// Backoff(k) is the wait between attempt k and k+1, counting from zero.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(k int) time.Duration
	Retryable   func(err error) bool
	// Sleep waits d or until ctx is done. Defaults to a timer-based wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy is 3 attempts, 1s then 2s, retrying 429/5xx and
// network failures.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     ExponentialBackoff(DefaultBackoffBase),
		Retryable:   IsRetryable,
		Sleep:       SleepContext,
	}
}

// ExponentialBackoff returns k -> 2^k * base
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(k int) time.Duration {
		if k < 0 {
			k = 0
		}
		if k > 20 {
			k = 20
		}
		return base * time.Duration(1<<uint(k))
	}
}

// SleepContext waits d of wall-clock time, returning early with ctx.Err()
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Backoff == nil {
		p.Backoff = ExponentialBackoff(DefaultBackoffBase)
	}
	if p.Retryable == nil {
		p.Retryable = IsRetryable
	}
	if p.Sleep == nil {
		p.Sleep = SleepContext
	}
	return p
}
