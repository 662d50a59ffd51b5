package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/harvinder-fsd/roster/client"
)

var errNotSignedIn = errors.New("not signed in; run rosterctl login")

// profile is the signed-in session persisted between invocations.
type profile struct {
	ServiceURL string `yaml:"service_url"`
	Token      string `yaml:"token"`
	UserID     int    `yaml:"user_id"`
	Username   string `yaml:"username"`
	Role       string `yaml:"role"`
}

func loadProfile(path string) (*profile, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Token == "" {
		return nil, errNotSignedIn
	}
	return &p, nil
}

func saveProfile(path string, p *profile) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0600)
}

func removeProfile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// restoreSession rebuilds the saved session on c. With required false a
// missing profile yields a nil session, which sends unauthenticated requests.
func restoreSession(c *client.Client, required bool) (*client.Session, error) {
	p, err := loadProfile(profilePath)
	if errors.Is(err, errNotSignedIn) && !required {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.ServiceURL != "" && p.ServiceURL != c.BaseURL() {
		log.Warn().Str("profile_url", p.ServiceURL).Str("service_url", c.BaseURL()).Msg("profile was issued by a different service")
	}
	return c.RestoreSession(p.Token, client.User{ID: p.UserID, Username: p.Username, Role: p.Role}), nil
}
