package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/api/recovery"
	"github.com/harvinder-fsd/roster/server/internal/api/respond"
	"github.com/harvinder-fsd/roster/server/internal/auth"
	"github.com/harvinder-fsd/roster/server/internal/resume"
	"github.com/harvinder-fsd/roster/server/internal/services"
)

// Deps are the collaborators the router wires to handlers.
type Deps struct {
	Students     *services.StudentService
	Users        *services.UserService
	Contacts     *services.ContactService
	Resume       resume.Source
	Authorizer   auth.Authorizer
	AuthRequired bool
	Health       HealthSource
	Log          zerolog.Logger
}

// NewRouter registers every route.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(d.Log))
	root.Use(RequestLogger(d.Log))

	rejectUnauthorized := func(w http.ResponseWriter, err error) {
		respond.WriteUnauthorized(w, err.Error())
	}
	protected := root.NewRoute().Subrouter()
	protected.Use(auth.Middleware(d.Authorizer, d.AuthRequired, rejectUnauthorized))

	// Students
	students := NewStudentHandler(d.Students)
	protected.HandleFunc("/students", students.ListStudents).Methods("GET")
	protected.HandleFunc("/students", students.CreateStudent).Methods("POST")
	protected.HandleFunc("/students/{id:[0-9-]+}", students.GetStudent).Methods("GET")
	protected.HandleFunc("/students/{id:[0-9-]+}", students.UpdateStudent).Methods("PUT")
	protected.HandleFunc("/students/{id:[0-9-]+}", students.DeleteStudent).Methods("DELETE")

	// Users
	users := NewUserHandler(d.Users)
	root.HandleFunc("/auth/login", users.Login).Methods("POST")
	protected.HandleFunc("/users", users.ListUsers).Methods("GET")

	// Portfolio
	portfolio := NewPortfolioHandler(d.Contacts, d.Resume, d.Log)
	root.HandleFunc("/api/contact", portfolio.SubmitContact).Methods("POST")
	protected.HandleFunc("/api/contacts", portfolio.ListContacts).Methods("GET")
	root.HandleFunc("/api/resume/download", portfolio.DownloadResume).Methods("GET")

	// Health and metrics
	root.HandleFunc("/api/health", NewHealthHandler(d.Health).CheckHealth).Methods("GET")
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")

	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "route not found")
	})
	return root
}
