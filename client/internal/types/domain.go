package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Student is one record of the student collection. ID is assigned by the
// server and is zero on create requests.
type Student struct {
	ID         int    `json:"id,omitempty"`
	Name       string `json:"name"`
	RollNumber string `json:"rollNumber"`
	Class      string `json:"class"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// Field returns the named field as a string, using the JSON field names.
// Unknown names yield "".
func (s Student) Field(name string) string {
	switch name {
	case "name":
		return s.Name
	case "rollNumber":
		return s.RollNumber
	case "class":
		return s.Class
	case "email":
		return s.Email
	case "phone":
		return s.Phone
	case "address":
		return s.Address
	}
	return ""
}

// User is an account as listed by GET /users. Passwords never leave the server.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Contact is a portfolio contact-form submission.
type Contact struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}
