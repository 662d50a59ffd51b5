package types

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Validation
// ------------------------------

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationErrors maps a field name to a human-readable problem.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateStudent checks s before it is sent. Uniqueness of rollNumber and
// email is checked only against existing, the locally loaded collection; the
// entity with s.ID is skipped so an edit does not conflict with itself.
func ValidateStudent(s Student, existing []Student) ValidationErrors {
	errs := ValidationErrors{}
	required := []struct{ field, label, value string }{
		{"name", "Name", s.Name},
		{"rollNumber", "Roll number", s.RollNumber},
		{"class", "Class", s.Class},
		{"email", "Email", s.Email},
		{"phone", "Phone", s.Phone},
		{"address", "Address", s.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.label + " is required"
		}
	}
	if _, bad := errs["email"]; !bad && !emailPattern.MatchString(s.Email) {
		errs["email"] = "Email is invalid"
	}

	roll, email := strings.TrimSpace(s.RollNumber), strings.TrimSpace(s.Email)
	for _, o := range existing {
		if s.ID != 0 && o.ID == s.ID {
			continue
		}
		if _, bad := errs["rollNumber"]; !bad && strings.TrimSpace(o.RollNumber) == roll {
			errs["rollNumber"] = "Roll number already exists"
		}
		if _, bad := errs["email"]; !bad && strings.EqualFold(strings.TrimSpace(o.Email), email) {
			errs["email"] = "Email already exists"
		}
	}
	return errs
}

// ValidateContact applies the contact form rules: name of at least 2
// characters, a valid email and a message of at least 10 characters.
func ValidateContact(c Contact) []FieldIssue {
	var issues []FieldIssue
	if len([]rune(strings.TrimSpace(c.Name))) < 2 {
		issues = append(issues, FieldIssue{Path: "name", Message: "Name must be at least 2 characters"})
	}
	if !emailPattern.MatchString(c.Email) {
		issues = append(issues, FieldIssue{Path: "email", Message: "Invalid email address"})
	}
	if len([]rune(strings.TrimSpace(c.Message))) < 10 {
		issues = append(issues, FieldIssue{Path: "message", Message: "Message must be at least 10 characters"})
	}
	return issues
}
