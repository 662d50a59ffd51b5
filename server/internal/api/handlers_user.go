package api

import (
	"encoding/json"
	"net/http"

	"github.com/harvinder-fsd/roster/server/internal/api/respond"
	"github.com/harvinder-fsd/roster/server/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// Login POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	sess, err := h.svc.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		respond.FromError(w, err, "user not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// ListUsers GET /users. Password hashes are never serialized.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respond.FromError(w, err, "user not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, users)
}
