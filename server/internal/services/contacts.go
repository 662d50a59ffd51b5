package services

import (
	"context"
	"strings"

	"github.com/harvinder-fsd/roster/server/internal/api/validate"
	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/store"
)

type ContactService struct {
	store store.Store
}

func NewContactService(s store.Store) *ContactService { return &ContactService{store: s} }

// Submit validates and stores a contact form submission.
func (s *ContactService) Submit(ctx context.Context, in *model.Contact) (*model.Contact, error) {
	c := model.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := model.NewValidationError(validate.Contact(&c)); err != nil {
		return nil, err
	}
	return s.store.Contacts().Create(ctx, &c)
}

func (s *ContactService) List(ctx context.Context) ([]model.Contact, error) {
	return s.store.Contacts().List(ctx)
}
