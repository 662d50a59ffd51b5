package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// ClassifyHTTPError builds a ClassifiedError for a non-success response.
//   - 4xx client errors (except 408 and 429) are irrecoverable
//   - 5xx server errors are recoverable
func ClassifyHTTPError(op string, statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Op:         op,
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Message:    serverMessage(body),
		Underlying: underlyingErr,
	}
}

func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// unexpected status codes; be conservative and allow retry
		return Recoverable
	}
}

// NewHTTPError creates a classified error for an HTTP failure of op.
func NewHTTPError(statusCode int, body string, op string) *ClassifiedError {
	underlyingErr := fmt.Errorf("%s failed: HTTP %d", op, statusCode)
	return ClassifyHTTPError(op, statusCode, body, underlyingErr)
}

// NewNetworkError creates a classified error for a transport-level failure.
// These are recoverable as they may be transient, except for calls made on a
// signed-out session.
func NewNetworkError(op string, err error) *ClassifiedError {
	category := Recoverable
	if stderrors.Is(err, ErrSignedOut) {
		category = Irrecoverable
	}
	return &ClassifiedError{
		Op:         op,
		Category:   category,
		Underlying: err,
	}
}

// serverMessage extracts {"message": ...} or {"error": ...} from a JSON body.
func serverMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" || body[0] != '{' {
		return ""
	}
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
