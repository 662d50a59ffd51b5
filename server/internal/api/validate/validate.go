package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"

	"github.com/harvinder-fsd/roster/server/internal/model"
)

// Email reports whether v is a well-formed address.
func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !strfmt.IsEmail(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func MinLen(field, v string, limit int) error {
	if utf8.RuneCountInString(strings.TrimSpace(v)) < limit {
		return fmt.Errorf("%s must be at least %d characters", field, limit)
	}
	return nil
}

// -------- Request specific helpers ----------

// Student checks every student field is present and the email is valid.
// Issues use the wire field names as paths.
func Student(s *model.Student) []model.FieldIssue {
	var issues []model.FieldIssue
	required := []struct{ path, label, v string }{
		{"name", "Name", s.Name},
		{"rollNumber", "Roll number", s.RollNumber},
		{"class", "Class", s.Class},
		{"email", "Email", s.Email},
		{"phone", "Phone", s.Phone},
		{"address", "Address", s.Address},
	}
	for _, f := range required {
		if NonEmpty(f.path, f.v) != nil {
			issues = append(issues, model.FieldIssue{Path: f.path, Message: f.label + " is required"})
			continue
		}
		if err := MaxLen(f.path, f.v, 200); err != nil {
			issues = append(issues, model.FieldIssue{Path: f.path, Message: err.Error()})
		}
	}
	if strings.TrimSpace(s.Email) != "" && Email(strings.TrimSpace(s.Email)) != nil {
		issues = append(issues, model.FieldIssue{Path: "email", Message: "Email is invalid"})
	}
	return issues
}

// Contact applies the contact form rules.
func Contact(c *model.Contact) []model.FieldIssue {
	var issues []model.FieldIssue
	if MinLen("name", c.Name, 2) != nil {
		issues = append(issues, model.FieldIssue{Path: "name", Message: "Name must be at least 2 characters"})
	} else if err := MaxLen("name", c.Name, 100); err != nil {
		issues = append(issues, model.FieldIssue{Path: "name", Message: err.Error()})
	}
	if Email(strings.TrimSpace(c.Email)) != nil {
		issues = append(issues, model.FieldIssue{Path: "email", Message: "Invalid email address"})
	}
	if err := MaxLen("subject", c.Subject, 200); err != nil {
		issues = append(issues, model.FieldIssue{Path: "subject", Message: err.Error()})
	}
	if MinLen("message", c.Message, 10) != nil {
		issues = append(issues, model.FieldIssue{Path: "message", Message: "Message must be at least 10 characters"})
	} else if err := MaxLen("message", c.Message, 5000); err != nil {
		issues = append(issues, model.FieldIssue{Path: "message", Message: err.Error()})
	}
	return issues
}

// Login requires both credentials.
func Login(username, password string) []model.FieldIssue {
	var issues []model.FieldIssue
	if NonEmpty("username", username) != nil {
		issues = append(issues, model.FieldIssue{Path: "username", Message: "Username is required"})
	}
	if password == "" {
		issues = append(issues, model.FieldIssue{Path: "password", Message: "Password is required"})
	}
	return issues
}
