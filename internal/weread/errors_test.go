package weread

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   RetryDecision
	}{
		{400, Permanent},
		{401, Permanent},
		{403, Permanent},
		{404, Permanent},
		{418, Permanent},
		{429, Retryable},
		{500, Retryable},
		{502, Retryable},
		{503, Retryable},
		{599, Retryable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			if got := Classify(tt.status); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestRequestError(t *testing.T) {
	err := NewRequestError(503)
	if !err.ShouldRetry() {
		t.Error("503 should be retryable")
	}
	if got, want := err.Error(), "weread request failed with status 503"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if NewRequestError(404).ShouldRetry() {
		t.Error("404 should not be retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable request error", NewRequestError(500), true},
		{"permanent request error", NewRequestError(404), false},
		{"wrapped permanent error", fmt.Errorf("bookmark list: %w", NewRequestError(401)), false},
		{"wrapped retryable error", fmt.Errorf("bookmark list: %w", NewRequestError(429)), true},
		{"unclassified error defaults to retryable", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
