package weread

import (
	"errors"
	"fmt"
)

// RetryDecision classifies an HTTP status for retry purposes.
type RetryDecision int

const (
	// Permanent statuses are never retried; the error propagates on
	// first occurrence.
	Permanent RetryDecision = iota

	// Retryable statuses are transient and worth retrying with backoff.
	Retryable
)

// Classify maps an HTTP status code to a RetryDecision.
//
// Rate limiting (429) and server errors (>= 500) are transient; every
// other non-success status (404, 401, ...) is permanent.
func Classify(status int) RetryDecision {
	if status == 429 || status >= 500 {
		return Retryable
	}
	return Permanent
}

// RequestError is a non-success response from a WeRead endpoint.
//
// Retryability is derived from the status code once at construction and
// never recomputed.
type RequestError struct {
	// Status is the HTTP status code of the response.
	Status int

	retryable bool
}

// NewRequestError creates a RequestError for the given status code.
func NewRequestError(status int) *RequestError {
	return &RequestError{
		Status:    status,
		retryable: Classify(status) == Retryable,
	}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("weread request failed with status %d", e.Status)
}

// ShouldRetry reports whether the failed request is worth retrying.
func (e *RequestError) ShouldRetry() bool {
	return e.retryable
}

// IsRetryable reports whether err warrants another attempt.
//
// Classified request errors answer for themselves. Anything else
// (transport failures, decode errors) is treated as retryable: a
// deliberately conservative default that burns retry budget on unknown
// failures rather than dropping a book on a flaky connection.
func IsRetryable(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.ShouldRetry()
	}
	return true
}
