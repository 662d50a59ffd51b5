package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/harvinder-fsd/roster/server/internal/api/respond"
	"github.com/harvinder-fsd/roster/server/internal/model"
	"github.com/harvinder-fsd/roster/server/internal/services"
)

const studentNotFound = "student not found"

// StudentHandler serves the /students collection.
type StudentHandler struct {
	svc *services.StudentService
}

func NewStudentHandler(svc *services.StudentService) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// ListStudents GET /students
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		respond.FromError(w, err, studentNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, list)
}

// CreateStudent POST /students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var in model.Student
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Create(r.Context(), &in)
	if err != nil {
		respond.FromError(w, err, studentNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetStudent GET /students/{id}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err, studentNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateStudent PUT /students/{id}
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	var in model.Student
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Update(r.Context(), id, &in)
	if err != nil {
		respond.FromError(w, err, studentNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteStudent DELETE /students/{id}
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.FromError(w, err, studentNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]int{"id": id})
}

func studentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respond.WriteBadRequest(w, "invalid student id")
		return 0, false
	}
	return id, true
}
