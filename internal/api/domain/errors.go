package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindConflict
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unexpected"
	}
}

// ErrRecordNotFound is returned by storage when a lookup matches no row
var ErrRecordNotFound = errors.New("record not found")

// Error is the single error type services return
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// With attaches a detail entry and returns the same error
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewValidation(message string) *Error { return newError(KindValidation, message) }
func NewNotFound(message string) *Error { return newError(KindNotFound, message) }
func NewDuplicate(message string) *Error { return newError(KindDuplicate, message) }
func NewConflict(message string) *Error { return newError(KindConflict, message) }
func NewForbidden(message string) *Error { return newError(KindForbidden, message) }
func NewUnauthorized(message string) *Error { return newError(KindUnauthorized, message) }

// NewUnexpected wraps an infrastructure failure
func NewUnexpected(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected when err is not a domain error
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// AsError extracts the domain error from err's chain
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsNotFound reports whether err means a missing record, either as a
// storage miss or as a NotFound domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || KindOf(err) == KindNotFound
}
