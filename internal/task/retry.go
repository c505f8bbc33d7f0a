package task

import (
	"context"
	"time"
)

// RetryPolicy is an ordered sequence of delays between retry attempts.
//
// The policy is a plain value: the number of entries is the retry budget,
// and the entry for attempt i is the pause before retry i. Both retry
// layers of the exporter (per-book micro-retry and round-level escalation)
// are parameterized with their own independent RetryPolicy.
//
// Example:
//
//	policy := task.RetryPolicy{Delays: []time.Duration{time.Second, 3 * time.Second}}
//	policy.MaxRetries() // 2
//	policy.Delay(0)     // 1s
//	policy.Delay(5)     // 3s (clamped to the last entry)
type RetryPolicy struct {
	// Delays are the pauses before each retry, in attempt order.
	Delays []time.Duration
}

// RetryPolicyFromMillis builds a RetryPolicy from delays in milliseconds,
// which is how delays are written in the settings file.
func RetryPolicyFromMillis(ms []int) RetryPolicy {
	delays := make([]time.Duration, len(ms))
	for i, m := range ms {
		delays[i] = time.Duration(m) * time.Millisecond
	}
	return RetryPolicy{Delays: delays}
}

// MaxRetries returns the retry budget: one retry per delay entry.
func (p RetryPolicy) MaxRetries() int {
	return len(p.Delays)
}

// Delay returns the pause before retry attempt (0-indexed). Attempts
// beyond the schedule reuse the last entry; an empty policy returns 0.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	if attempt >= len(p.Delays) {
		attempt = len(p.Delays) - 1
	}
	if attempt < 0 {
		attempt = 0
	}
	return p.Delays[attempt]
}

// Truncate returns a policy limited to the first n delay entries.
//
// The batch manager uses this to derive the fast per-book policy from the
// slower round-level schedule.
func (p RetryPolicy) Truncate(n int) RetryPolicy {
	if n < 0 {
		n = 0
	}
	if n > len(p.Delays) {
		n = len(p.Delays)
	}
	return RetryPolicy{Delays: p.Delays[:n]}
}

// Sleep pauses for d or until ctx is cancelled, whichever comes first.
//
// A zero or negative duration returns immediately without touching the
// timer. Returns ctx.Err() when the context ends the pause early.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
