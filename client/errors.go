package client

import (
	sdkerrors "github.com/harvinder-fsd/roster/client/internal/errors"
	"github.com/harvinder-fsd/roster/client/internal/types"
)

// NetworkError is returned for every non-success response and every
// transport failure (StatusCode 0).
type NetworkError = sdkerrors.ClassifiedError

// ValidationErrors maps a field name to a problem found before sending.
type ValidationErrors = types.ValidationErrors

// Re-export shared SDK errors so callers compare against a single symbol.
var ErrNotFound = sdkerrors.ErrNotFound

// IsIrrecoverable reports whether retrying err cannot help.
func IsIrrecoverable(err error) bool { return sdkerrors.IsIrrecoverable(err) }

// ValidateStudent checks s against the form rules and against the loaded
// collection for duplicate roll numbers and emails.
func ValidateStudent(s Student, existing []Student) ValidationErrors {
	return types.ValidateStudent(s, existing)
}
