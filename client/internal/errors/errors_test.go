package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewHTTPError_Classification(t *testing.T) {
	t.Parallel()
	cases := []struct {
		code int
		want ErrorCategory
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{409, Irrecoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
		{302, Recoverable},
	}
	for _, tc := range cases {
		err := NewHTTPError(tc.code, "", "list students")
		if err.Category != tc.want {
			t.Errorf("HTTP %d: category %s, want %s", tc.code, err.Category, tc.want)
		}
		if err.StatusCode != tc.code {
			t.Errorf("HTTP %d: status %d", tc.code, err.StatusCode)
		}
	}
}

func TestClassifiedError_NotFound(t *testing.T) {
	t.Parallel()
	var err error = NewHTTPError(404, `{"error":"student not found"}`, "update student")
	if !stderrors.Is(err, ErrNotFound) {
		t.Fatal("404 should match ErrNotFound")
	}
	if got := err.Error(); got != "update student: HTTP 404: student not found" {
		t.Fatalf("Error() = %q", got)
	}
	if !IsIrrecoverable(fmt.Errorf("wrapped: %w", err)) {
		t.Fatal("404 should be irrecoverable through wrapping")
	}

	other := NewHTTPError(500, "oops", "update student")
	if stderrors.Is(other, ErrNotFound) {
		t.Fatal("500 must not match ErrNotFound")
	}
	if other.Message != "" {
		t.Fatalf("non-JSON body yields no message, got %q", other.Message)
	}
}

func TestNewNetworkError(t *testing.T) {
	t.Parallel()
	err := NewNetworkError("list students", context.DeadlineExceeded)
	if err.StatusCode != 0 || err.Category != Recoverable {
		t.Fatalf("unexpected: %+v", err)
	}
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Fatal("underlying error lost")
	}
	if IsIrrecoverable(err) {
		t.Fatal("network errors are recoverable")
	}
	if got, want := err.Error(), "list students: context deadline exceeded"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if n := strings.Count(err.Error(), "list students"); n != 1 {
		t.Fatalf("op repeated %d times in %q", n, err.Error())
	}
}

func TestNewNetworkError_SignedOutIsIrrecoverable(t *testing.T) {
	t.Parallel()
	err := NewNetworkError("list students", fmt.Errorf("get /api/students: %w", ErrSignedOut))
	if !IsIrrecoverable(err) {
		t.Fatal("signed-out session must not be retried")
	}
	if !stderrors.Is(err, ErrSignedOut) {
		t.Fatal("ErrSignedOut lost")
	}
}

func TestServerMessage(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		`{"message":"Validation error"}`: "Validation error",
		`{"error":"conflict"}`:           "conflict",
		`{"message":"a","error":"b"}`:    "a",
		`not json`:                       "",
		``:                               "",
		`{"message":`:                    "",
	}
	for body, want := range cases {
		if got := serverMessage(body); got != want {
			t.Errorf("serverMessage(%q) = %q, want %q", body, got, want)
		}
	}
}
