package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/api/validate"
	"github.com/harvinder-fsd/roster/server/internal/auth"
	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/store"
)

// Session is the result of a successful login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// UserService handles accounts and login.
type UserService struct {
	store  store.Store
	tokens *auth.Tokens
	log    zerolog.Logger
}

func NewUserService(s store.Store, tokens *auth.Tokens, log zerolog.Logger) *UserService {
	return &UserService{store: s, tokens: tokens, log: log}
}

// Login checks the password against the stored bcrypt hash and issues a
// bearer token. Unknown users and wrong passwords both yield
// auth.ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if err := model.NewValidationError(validate.Login(username, password)); err != nil {
		return nil, err
	}
	u, err := s.store.Users().GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, auth.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		s.log.Warn().Str("username", username).Msg("login rejected")
		return nil, err
	}
	tok, exp, err := s.tokens.Issue(auth.Actor{UserID: u.ID, Username: u.Username, Role: u.Role})
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return &Session{Token: tok, ExpiresAt: exp, User: u}, nil
}

// CreateUser hashes password and stores a new account.
func (s *UserService) CreateUser(ctx context.Context, username, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if err := model.NewValidationError(validate.Login(username, password)); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.store.Users().Create(ctx, &model.User{Username: username, PasswordHash: hash, Role: role})
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// SeedAdmin creates the admin account once. An existing account is left as is.
func (s *UserService) SeedAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		s.log.Warn().Msg("admin password not configured; skipping admin seed")
		return nil
	}
	_, err := s.CreateUser(ctx, username, password, model.RoleAdmin)
	switch {
	case errors.Is(err, model.ErrConflict):
		return nil
	case err != nil:
		return err
	}
	s.log.Info().Str("username", username).Msg("seeded admin user")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.Users().List(ctx)
}
