package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyDelay(t *testing.T) {
	policy := RetryPolicy{Delays: []time.Duration{
		time.Second, 3 * time.Second, 5 * time.Second,
	}}

	tests := []struct {
		name    string
		attempt int
		want    time.Duration
	}{
		{"first attempt", 0, time.Second},
		{"second attempt", 1, 3 * time.Second},
		{"last attempt", 2, 5 * time.Second},
		{"beyond schedule clamps to last", 7, 5 * time.Second},
		{"negative clamps to first", -1, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Delay(tt.attempt); got != tt.want {
				t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestRetryPolicyDelayEmpty(t *testing.T) {
	var policy RetryPolicy
	if got := policy.Delay(0); got != 0 {
		t.Errorf("empty policy Delay(0) = %v, want 0", got)
	}
	if got := policy.MaxRetries(); got != 0 {
		t.Errorf("empty policy MaxRetries() = %d, want 0", got)
	}
}

func TestRetryPolicyTruncate(t *testing.T) {
	policy := RetryPolicyFromMillis([]int{1000, 3000, 5000})

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"shorter", 2, 2},
		{"exact", 3, 3},
		{"longer than schedule", 5, 3},
		{"zero", 0, 0},
		{"negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Truncate(tt.n).MaxRetries(); got != tt.want {
				t.Errorf("Truncate(%d).MaxRetries() = %d, want %d", tt.n, got, tt.want)
			}
		})
	}

	// The truncated policy keeps the leading entries.
	fast := policy.Truncate(2)
	if got := fast.Delay(1); got != 3*time.Second {
		t.Errorf("Truncate(2).Delay(1) = %v, want 3s", got)
	}
}

func TestRetryPolicyFromMillis(t *testing.T) {
	policy := RetryPolicyFromMillis([]int{250, 500})
	if got := policy.Delay(0); got != 250*time.Millisecond {
		t.Errorf("Delay(0) = %v, want 250ms", got)
	}
	if got := policy.Delay(1); got != 500*time.Millisecond {
		t.Errorf("Delay(1) = %v, want 500ms", got)
	}
}

func TestSleepZeroReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("Sleep(0) error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("Sleep(0) took %v", elapsed)
	}
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
}
