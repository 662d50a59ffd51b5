package client

import (
	"context"
	"net/http"

	"github.com/harvinder-fsd/roster/client/internal/api"
	"github.com/harvinder-fsd/roster/collection"
)

// StudentResource is the remote student collection. It implements
// collection.Remote[int, Student]; it never retries.
type StudentResource struct {
	baseURL string
	http    *http.Client
}

var _ collection.Remote[int, Student] = (*StudentResource)(nil)

// FetchAll returns every student in server order.
func (r *StudentResource) FetchAll(ctx context.Context) ([]Student, error) {
	return api.ListStudents(ctx, r.http, r.baseURL)
}

// Create stores s and returns it with the server-assigned id.
func (r *StudentResource) Create(ctx context.Context, s Student) (Student, error) {
	return api.CreateStudent(ctx, r.http, r.baseURL, s)
}

// Update replaces the student with id.
func (r *StudentResource) Update(ctx context.Context, id int, s Student) (Student, error) {
	return api.UpdateStudent(ctx, r.http, r.baseURL, id, s)
}

// Delete removes the student with id and returns the confirmed id.
func (r *StudentResource) Delete(ctx context.Context, id int) (int, error) {
	return api.DeleteStudent(ctx, r.http, r.baseURL, id)
}

// StudentKey is the identity function for a Student collection.
func StudentKey(s Student) int { return s.ID }

// StudentField exposes Student fields by JSON name for collection.Project.
func StudentField(s Student, name string) string { return s.Field(name) }

// StudentSearchFields are the fields free-text search looks at.
var StudentSearchFields = []string{"name", "rollNumber", "email"}

// NewStudentReconciler wires r into a fresh Store and Reconciler named "students".
func NewStudentReconciler(r *StudentResource, opts ...collection.ReconcilerOption) *collection.Reconciler[int, Student] {
	opts = append([]collection.ReconcilerOption{collection.WithName("students")}, opts...)
	return collection.NewReconciler(collection.NewStore(StudentKey), collection.Remote[int, Student](r), opts...)
}

// StudentQuery returns a projection query that searches the usual fields
// and compares roll numbers numerically.
func StudentQuery(search, class, sortKey string, desc bool) collection.Query {
	return collection.Query{
		Search:       search,
		SearchFields: StudentSearchFields,
		FilterField:  "class",
		FilterValue:  class,
		SortKey:      sortKey,
		Desc:         desc,
		NumericKeys:  []string{"rollNumber"},
	}
}
