package api

import (
	"context"
	"net/http"

	"github.com/harvinder-fsd/roster/client/internal/types"
)

// Login exchanges credentials for a bearer token.
func Login(ctx context.Context, hc types.HTTPClient, baseURL string, req types.LoginRequest) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := doJSON(ctx, hc, "login", http.MethodPost, baseURL+"/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all accounts, without credentials.
func ListUsers(ctx context.Context, hc types.HTTPClient, baseURL string) ([]types.User, error) {
	var out []types.User
	if err := doJSON(ctx, hc, "list users", http.MethodGet, baseURL+"/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
