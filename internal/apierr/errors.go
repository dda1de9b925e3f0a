// Package apierr provides caller-side retry infrastructure on top of the
// cryptocompare error taxonomy. The client itself never retries; commands
// opt in by wrapping calls with RetryWithBackoff and IsRetryable.
package apierr

import (
	"context"
	"errors"
	"net/http"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// ErrRetriesExhausted indicates every attempt allowed by RetryConfig failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// IsRetryable reports whether repeating the same call may succeed.
//
// Timeouts, connection failures, 429 and 5xx responses are transient.
// Service and decode errors are deterministic, and cancellation is the
// caller's decision, so neither is retried.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, cryptocompare.ErrTimeout) {
		return true
	}

	var te *cryptocompare.TransportError
	if errors.As(err, &te) {
		return te.StatusCode == 0 ||
			te.StatusCode == http.StatusTooManyRequests ||
			te.StatusCode >= http.StatusInternalServerError
	}

	return false
}
