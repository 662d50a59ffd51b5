// Package errors classifies failures of calls to the student-records service.
// Every failed call surfaces as a *ClassifiedError so callers can decide
// whether a retry makes sense.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound is matched by errors.Is for any 404 response.
var ErrNotFound = stderrors.New("not found")

// ErrSignedOut is returned by every call made through a session after sign-out.
var ErrSignedOut = stderrors.New("session signed out")

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may succeed when retried.
	// Examples: 500 Internal Server Error, connection refused.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail the same way every time.
	// Examples: 400 Bad Request, 401 Unauthorized, 404 Not Found.
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError is the NetworkError of the SDK: a non-success status or a
// transport failure.
type ClassifiedError struct {
	Op         string // e.g. "update student"
	Category   ErrorCategory
	StatusCode int    // 0 for transport failures
	Body       string // raw response body
	Message    string // server-provided "message" or "error" field, if any
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		if e.Message != "" {
			return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// Is makes errors.Is(err, ErrNotFound) true for 404 responses.
func (e *ClassifiedError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// IsNotFound reports whether the server answered 404.
func (e *ClassifiedError) IsNotFound() bool { return e.StatusCode == 404 }

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	if stderrors.As(err, &ce) {
		return ce.Category == Irrecoverable
	}
	return false
}
