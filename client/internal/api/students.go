package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/harvinder-fsd/roster/client/internal/types"
)

// ListStudents fetches the whole collection.
func ListStudents(ctx context.Context, hc types.HTTPClient, baseURL string) ([]types.Student, error) {
	var out []types.Student
	if err := doJSON(ctx, hc, "list students", http.MethodGet, baseURL+"/students", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.Student{}
	}
	return out, nil
}

// CreateStudent posts s without an id; the server assigns one.
func CreateStudent(ctx context.Context, hc types.HTTPClient, baseURL string, s types.Student) (types.Student, error) {
	s.ID = 0
	var out types.Student
	err := doJSON(ctx, hc, "create student", http.MethodPost, baseURL+"/students", s, &out,
		http.StatusCreated, http.StatusOK)
	return out, err
}

// UpdateStudent replaces the student with id.
func UpdateStudent(ctx context.Context, hc types.HTTPClient, baseURL string, id int, s types.Student) (types.Student, error) {
	s.ID = id
	var out types.Student
	url := fmt.Sprintf("%s/students/%d", baseURL, id)
	err := doJSON(ctx, hc, "update student", http.MethodPut, url, s, &out, http.StatusOK)
	if err == nil && out.ID == 0 {
		out.ID = id
	}
	return out, err
}

// DeleteStudent removes the student with id and returns id on success.
func DeleteStudent(ctx context.Context, hc types.HTTPClient, baseURL string, id int) (int, error) {
	url := fmt.Sprintf("%s/students/%d", baseURL, id)
	if err := doJSON(ctx, hc, "delete student", http.MethodDelete, url, nil, nil,
		http.StatusOK, http.StatusNoContent); err != nil {
		return 0, err
	}
	return id, nil
}
