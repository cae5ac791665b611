package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for API callers. Validation and precondition
// errors are surfaced immediately with no retry; Internal errors indicate an
// unexpected failure in computation or the store.
type Kind string

const (
	InvalidArgument    Kind = "invalid_argument"
	PermissionDenied   Kind = "permission_denied"
	NotFound           Kind = "not_found"
	FailedPrecondition Kind = "failed_precondition"
	ResourceExhausted  Kind = "resource_exhausted"
	Internal           Kind = "internal"
)

// Error carries a Kind alongside a message and optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// KindOf extracts the Kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
