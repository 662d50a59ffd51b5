package types

// ------------------------------
// Request / Response Types
// ------------------------------

// LoginRequest holds credentials for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ContactResponse is the body of POST /api/contact.
type ContactResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Contact *ContactRef  `json:"contact,omitempty"`
	Errors  []FieldIssue `json:"errors,omitempty"`
}

// ContactRef identifies a stored contact.
type ContactRef struct {
	ID int `json:"id"`
}

// FieldIssue is one entry of a validation failure list.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
