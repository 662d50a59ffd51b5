package client

import "github.com/harvinder-fsd/roster/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	Student = types.Student
	User    = types.User
	Contact = types.Contact

	LoginRequest    = types.LoginRequest
	LoginResponse   = types.LoginResponse
	ContactResponse = types.ContactResponse
	FieldIssue      = types.FieldIssue
)

// ValidateContact applies the portfolio contact form rules.
func ValidateContact(c Contact) []FieldIssue { return types.ValidateContact(c) }
