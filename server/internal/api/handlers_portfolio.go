package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/api/respond"
	"github.com/harvinder-fsd/roster/server/internal/auth"
	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/resume"
	"github.com/harvinder-fsd/roster/server/internal/services"
)

const contactThanks = "Thank you for your message! I'll get back to you soon."

type contactRef struct {
	ID int `json:"id"`
}

type contactResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Contact *contactRef        `json:"contact,omitempty"`
	Errors  []model.FieldIssue `json:"errors,omitempty"`
}

// PortfolioHandler serves the contact form and resume download.
type PortfolioHandler struct {
	contacts *services.ContactService
	resume   resume.Source
	log      zerolog.Logger
}

func NewPortfolioHandler(contacts *services.ContactService, src resume.Source, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{contacts: contacts, resume: src, log: log}
}

// SubmitContact POST /api/contact
func (h *PortfolioHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in model.Contact
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteJSON(w, http.StatusBadRequest, contactResult{
			Message: "Validation error",
			Errors:  []model.FieldIssue{{Path: "body", Message: "Invalid JSON"}},
		})
		return
	}
	c, err := h.contacts.Submit(r.Context(), &in)
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.WriteJSON(w, http.StatusBadRequest, contactResult{Message: "Validation error", Errors: ve.Issues})
	case err != nil:
		h.log.Error().Err(err).Msg("store contact failed")
		respond.WriteJSON(w, http.StatusInternalServerError, contactResult{Message: "Failed to send message. Please try again."})
	default:
		respond.WriteJSON(w, http.StatusOK, contactResult{Success: true, Message: contactThanks, Contact: &contactRef{ID: c.ID}})
	}
}

// ListContacts GET /api/contacts. Signed-in non-admins are refused.
func (h *PortfolioHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	// admin-only even when the service runs with optional auth
	a, ok := auth.ActorFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "authentication required")
		return
	}
	if a.Role != model.RoleAdmin {
		respond.WriteJSON(w, http.StatusForbidden, contactResult{Message: "Admin access required"})
		return
	}
	list, err := h.contacts.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list contacts failed")
		respond.WriteJSON(w, http.StatusInternalServerError, contactResult{Message: "Failed to fetch contacts"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, list)
}

// DownloadResume GET /api/resume/download
func (h *PortfolioHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	doc, err := h.resume.Resume(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("resume unavailable")
		respond.WriteJSON(w, http.StatusInternalServerError, contactResult{Message: "Failed to download resume"})
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
