package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvinder-fsd/roster/server/internal/auth"
	"github.com/harvinder-fsd/roster/server/internal/model"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{model.NewValidationError([]model.FieldIssue{{Path: "name", Message: "Name is required"}}), 400, "validation error: name: Name is required"},
		{fmt.Errorf("get: %w", model.ErrNotFound), 404, "student not found"},
		{fmt.Errorf("roll number or email already exists: %w", model.ErrConflict), 409, "roll number or email already exists: conflict"},
		{auth.ErrBadCredentials, 401, "invalid username or password"},
		{errors.New("disk full"), 500, "disk full"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		FromError(rr, tt.err, "student not found")
		assert.Equal(t, tt.code, rr.Code, tt.err.Error())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tt.code, body.Code)
		assert.Equal(t, http.StatusText(tt.code), body.Error)
		assert.Equal(t, tt.message, body.Message)
	}
}

func TestFromError_ValidationCarriesIssues(t *testing.T) {
	rr := httptest.NewRecorder()
	FromError(rr, model.NewValidationError([]model.FieldIssue{{Path: "email", Message: "Email is invalid"}}), "")
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []model.FieldIssue{{Path: "email", Message: "Email is invalid"}}, body.Issues)
}

func TestWriteUnauthorizedSetsChallenge(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteUnauthorized(rr, "missing bearer token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Bearer")
}
