package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// unique suffix so a shared database does not collide across runs
	tag := uuid.NewString()[:8]

	// Students
	a, err := s.Students().Create(ctx, &model.Student{
		Name: "Asha", RollNumber: "2-" + tag, Class: "10A",
		Email: "asha-" + tag + "@example.test", Phone: "555", Address: "1 Main",
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("CreateStudent: id not assigned")
	}
	b, err := s.Students().Create(ctx, &model.Student{
		Name: "Ravi", RollNumber: "10-" + tag, Class: "10B",
		Email: "ravi-" + tag + "@example.test", Phone: "556", Address: "2 Main",
	})
	if err != nil {
		t.Fatalf("CreateStudent b: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("ids must increase: %d then %d", a.ID, b.ID)
	}

	if got, err := s.Students().Get(ctx, a.ID); err != nil || got.Name != "Asha" {
		t.Fatalf("GetStudent: got=%v err=%v", got, err)
	}
	if _, err := s.Students().Get(ctx, -1); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetStudent missing: want ErrNotFound, got %v", err)
	}

	// duplicate roll number and duplicate email
	dup := *b
	dup.ID = 0
	dup.Email = "other-" + tag + "@example.test"
	if _, err := s.Students().Create(ctx, &dup); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate roll number: want ErrConflict, got %v", err)
	}
	dup = *b
	dup.ID = 0
	dup.RollNumber = "99-" + tag
	if _, err := s.Students().Create(ctx, &dup); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email: want ErrConflict, got %v", err)
	}

	upd := *a
	upd.Name = "Asha K"
	if got, err := s.Students().Update(ctx, &upd); err != nil || got.Name != "Asha K" {
		t.Fatalf("UpdateStudent: got=%v err=%v", got, err)
	}
	upd.RollNumber = b.RollNumber
	if _, err := s.Students().Update(ctx, &upd); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("UpdateStudent into duplicate: want ErrConflict, got %v", err)
	}
	ghost := model.Student{ID: -1, Name: "x", RollNumber: "x-" + tag, Email: "x-" + tag + "@example.test"}
	if _, err := s.Students().Update(ctx, &ghost); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateStudent missing: want ErrNotFound, got %v", err)
	}

	lst, err := s.Students().List(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	pos := map[int]int{}
	for i, st := range lst {
		pos[st.ID] = i
	}
	if _, ok := pos[a.ID]; !ok || pos[a.ID] > pos[b.ID] {
		t.Fatalf("ListStudents: insertion order lost: %+v", lst)
	}

	if err := s.Students().Delete(ctx, a.ID); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}
	if err := s.Students().Delete(ctx, a.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteStudent twice: want ErrNotFound, got %v", err)
	}

	// Users
	u, err := s.Users().Create(ctx, &model.User{Username: "admin-" + tag, PasswordHash: "hash", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{Username: u.Username, PasswordHash: "x", Role: model.RoleUser}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate username: want ErrConflict, got %v", err)
	}
	got, err := s.Users().GetByUsername(ctx, u.Username)
	if err != nil || got.PasswordHash != "hash" || got.Role != model.RoleAdmin || got.CreatedAt.IsZero() {
		t.Fatalf("GetByUsername: got=%+v err=%v", got, err)
	}
	if _, err := s.Users().GetByUsername(ctx, "nobody-"+tag); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByUsername missing: want ErrNotFound, got %v", err)
	}
	users, err := s.Users().List(ctx)
	if err != nil || len(users) == 0 {
		t.Fatalf("ListUsers: n=%d err=%v", len(users), err)
	}
	for _, lu := range users {
		if lu.PasswordHash != "" {
			t.Fatalf("ListUsers leaked a password hash")
		}
	}

	// Contacts
	c1, err := s.Contacts().Create(ctx, &model.Contact{Name: "Jo", Email: "jo@example.test", Message: "first message"})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	c2, err := s.Contacts().Create(ctx, &model.Contact{Name: "Al", Email: "al@example.test", Subject: "Hi", Message: "second message"})
	if err != nil {
		t.Fatalf("CreateContact c2: %v", err)
	}
	cs, err := s.Contacts().List(ctx)
	if err != nil || len(cs) < 2 {
		t.Fatalf("ListContacts: n=%d err=%v", len(cs), err)
	}
	if cs[0].ID != c2.ID || cs[1].ID != c1.ID {
		t.Fatalf("ListContacts: want newest first, got %+v", cs)
	}
	if cs[0].Subject != "Hi" {
		t.Fatalf("ListContacts: subject lost")
	}
}
