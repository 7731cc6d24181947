// Package httpapi exposes the user/auth and project/task services over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aloks98/taskboard/internal/projects"
	"github.com/aloks98/taskboard/internal/token"
	"github.com/aloks98/taskboard/internal/users"
)

// Server is the HTTP boundary of the service.
type Server struct {
	users    *users.Service
	projects *projects.Service
	tokens   *token.Service
	log      *slog.Logger

	// allowedOrigin is the single origin allowed on the user endpoints;
	// the project endpoints allow all origins.
	allowedOrigin string

	router chi.Router
}

// New creates the HTTP server around the given services.
func New(userSvc *users.Service, projectSvc *projects.Service, tokens *token.Service, log *slog.Logger, allowedOrigin string) *Server {
	s := &Server{
		users:         userSvc,
		projects:      projectSvc,
		tokens:        tokens,
		log:           log,
		allowedOrigin: allowedOrigin,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	// User/auth API: CORS restricted to the configured frontend origin.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.allowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))

		r.Post("/login", s.handleLogin)
		r.Post("/user/", s.handleCreateUser)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/user/", s.handleGetUser)
			r.Patch("/user/", s.handleEditUser)
			r.Delete("/user/", s.handleDeleteUser)
			r.Get("/users/me", s.handleMe)
		})
	})

	// Project/task API: open to all origins.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Post("/projects/", s.handleCreateProject)
		r.Get("/projects/", s.handleListProjects)
		r.Get("/projects/{projectID}", s.handleGetProject)
		r.Patch("/projects/{projectID}", s.handleUpdateProject)
		r.Delete("/projects/{projectID}", s.handleDeleteProject)

		r.Post("/projects/{projectID}/tasks/", s.handleCreateTask)
		r.Get("/projects/{projectID}/tasks/", s.handleListTasks)
		r.Get("/tasks/{taskID}", s.handleGetTask)
		r.Patch("/tasks/{taskID}", s.handleUpdateTask)
		r.Delete("/tasks/{taskID}", s.handleDeleteTask)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// serverError logs the failure and answers with a generic 500.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
