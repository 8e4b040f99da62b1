package ai

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ProviderError wraps a failure from an embedding provider and records
// whether retrying the same call could succeed.
type ProviderError struct {
	Op        string // operation that failed, e.g. "embed text"
	Err       error
	Transient bool
}

func (e *ProviderError) Error() string {
	return "ai: " + e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a retryable provider failure.
func Transient(op string, err error) error {
	return &ProviderError{Op: op, Err: err, Transient: true}
}

// Permanent wraps err as a non-retryable provider failure.
func Permanent(op string, err error) error {
	return &ProviderError{Op: op, Err: err, Transient: false}
}

// IsTransient reports whether err is worth retrying. Classified
// ProviderErrors answer directly; otherwise timeouts and network
// failures count as transient and everything else as permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return transientMessage(err.Error())
}

// transientMessage classifies provider failures that only surface as
// formatted strings (the OpenAI-compatible client reports HTTP status
// this way).
func transientMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{
		"timeout",
		"timed out",
		"connection refused",
		"connection reset",
		"rate limit",
		"too many requests",
		"status code: 429",
		"status code: 500",
		"status code: 502",
		"status code: 503",
		"status code: 504",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
