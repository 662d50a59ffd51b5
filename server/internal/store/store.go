package store

import (
	"context"

	"github.com/harvinder-fsd/roster/server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Students() Students
	Users() Users
	Contacts() Contacts
	Close() error
}

// Students is the student collection. Roll numbers and emails are unique;
// violating that yields model.ErrConflict.
type Students interface {
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) (*model.Student, error)
	Delete(ctx context.Context, id int) error
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type Contacts interface {
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)
	// List returns contacts newest first.
	List(ctx context.Context) ([]model.Contact, error)
}
