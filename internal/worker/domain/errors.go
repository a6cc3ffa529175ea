package domain

import "errors"

var (
	// ErrInvalidEvent is returned for messages that can never be recorded
	ErrInvalidEvent = errors.New("invalid application event")

	// ErrUnknownEventType is returned for routing keys the worker does not handle
	ErrUnknownEventType = errors.New("unknown event type")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
