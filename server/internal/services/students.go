package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harvinder-fsd/roster/server/internal/api/validate"
	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/store"
)

// StudentService validates and persists student records.
type StudentService struct {
	store store.Store
}

func NewStudentService(s store.Store) *StudentService { return &StudentService{store: s} }

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.store.Students().List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	return s.store.Students().Get(ctx, id)
}

// Create assigns a fresh id; any id on the input is ignored.
func (s *StudentService) Create(ctx context.Context, in *model.Student) (*model.Student, error) {
	st := normalize(in)
	st.ID = 0
	if err := model.NewValidationError(validate.Student(&st)); err != nil {
		return nil, err
	}
	out, err := s.store.Students().Create(ctx, &st)
	return out, conflict(err)
}

// Update replaces the student at id in full.
func (s *StudentService) Update(ctx context.Context, id int, in *model.Student) (*model.Student, error) {
	st := normalize(in)
	st.ID = id
	if err := model.NewValidationError(validate.Student(&st)); err != nil {
		return nil, err
	}
	out, err := s.store.Students().Update(ctx, &st)
	return out, conflict(err)
}

func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.store.Students().Delete(ctx, id)
}

func normalize(in *model.Student) model.Student {
	return model.Student{
		ID:         in.ID,
		Name:       strings.TrimSpace(in.Name),
		RollNumber: strings.TrimSpace(in.RollNumber),
		Class:      strings.TrimSpace(in.Class),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
	}
}

func conflict(err error) error {
	if err != nil && errors.Is(err, model.ErrConflict) {
		return fmt.Errorf("roll number or email already exists: %w", err)
	}
	return err
}
