package types

import "testing"

func validStudent() Student {
	return Student{
		Name: "Asha", RollNumber: "12", Class: "10A",
		Email: "asha@example.com", Phone: "555-0101", Address: "1 Main St",
	}
}

func TestValidateStudent_Required(t *testing.T) {
	t.Parallel()
	errs := ValidateStudent(Student{Name: "  "}, nil)
	for _, f := range []string{"name", "rollNumber", "class", "email", "phone", "address"} {
		if _, ok := errs[f]; !ok {
			t.Fatalf("expected error for %s, got %v", f, errs)
		}
	}
	if errs["email"] != "Email is required" {
		t.Fatalf("missing email should report required, got %q", errs["email"])
	}
	if errs.Err() == nil {
		t.Fatal("Err() should be non-nil")
	}
}

func TestValidateStudent_EmailFormat(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in string
		ok bool
	}{
		{"a@b.co", true}, {"first.last@school.edu", true}, {"nope", false}, {"a@b", false}, {"@.", false},
	}
	for _, c := range cases {
		s := validStudent()
		s.Email = c.in
		_, bad := ValidateStudent(s, nil)["email"]
		if c.ok == bad {
			t.Fatalf("email %q: ok=%v but bad=%v", c.in, c.ok, bad)
		}
	}
}

func TestValidateStudent_Uniqueness(t *testing.T) {
	t.Parallel()
	existing := []Student{
		{ID: 1, RollNumber: "12", Email: "asha@example.com"},
		{ID: 2, RollNumber: "13", Email: "ravi@example.com"},
	}

	// new entity colliding with #1
	errs := ValidateStudent(validStudent(), existing)
	if errs["rollNumber"] != "Roll number already exists" || errs["email"] != "Email already exists" {
		t.Fatalf("unexpected: %v", errs)
	}

	// editing #1 itself is fine
	self := validStudent()
	self.ID = 1
	if err := ValidateStudent(self, existing).Err(); err != nil {
		t.Fatalf("self edit flagged: %v", err)
	}

	// editing #1 into #2's roll number conflicts
	self.RollNumber = "13"
	if _, bad := ValidateStudent(self, existing)["rollNumber"]; !bad {
		t.Fatal("expected roll number conflict with #2")
	}

	// surrounding whitespace does not hide a duplicate
	padded := validStudent()
	padded.RollNumber = " 13 "
	padded.Email = "other@example.com"
	if got := ValidateStudent(padded, existing)["rollNumber"]; got != "Roll number already exists" {
		t.Fatalf("padded roll number not flagged: %q", got)
	}
	stored := []Student{{ID: 3, RollNumber: "14 ", Email: "x@example.com"}}
	padded.RollNumber = "14"
	if _, bad := ValidateStudent(padded, stored)["rollNumber"]; !bad {
		t.Fatal("expected conflict with padded stored roll number")
	}
}

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	t.Parallel()
	v := ValidationErrors{"phone": "Phone is required", "email": "Email is invalid"}
	want := "validation failed: email: Email is invalid; phone: Phone is required"
	if v.Error() != want {
		t.Fatalf("got %q", v.Error())
	}
	if (ValidationErrors{}).Err() != nil {
		t.Fatal("empty set should be nil error")
	}
}

func TestValidateContact(t *testing.T) {
	t.Parallel()
	ok := Contact{Name: "Jo", Email: "jo@example.com", Message: "Hello there!"}
	if issues := ValidateContact(ok); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	issues := ValidateContact(Contact{Name: "J", Email: "bad", Message: "short"})
	if len(issues) != 3 {
		t.Fatalf("want 3 issues, got %v", issues)
	}
	if issues[0].Path != "name" || issues[1].Path != "email" || issues[2].Path != "message" {
		t.Fatalf("unexpected order: %v", issues)
	}
}

func TestStudentField(t *testing.T) {
	t.Parallel()
	s := validStudent()
	if s.Field("rollNumber") != "12" || s.Field("class") != "10A" || s.Field("nope") != "" {
		t.Fatalf("Field lookup broken")
	}
}
