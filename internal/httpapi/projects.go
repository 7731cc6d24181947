package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aloks98/taskboard/internal/projects"
)

type projectCreateRequest struct {
	Name string `json:"name"`
}

type projectPatchRequest struct {
	Name *string `json:"name"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.projects.CreateProject(r.Context(), req.Name)
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.projects.ListProjects(r.Context(), skip, limit)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.projects.UpdateProject(r.Context(), chi.URLParam(r, "projectID"), projects.ProjectPatch{Name: req.Name})
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.DeleteProject(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.projectError(w, r, err)
		return
	}

	writeMessage(w, "Project deleted successfully")
}

// projectError maps resource errors onto the project/task API's status codes.
func (s *Server) projectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, projects.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, projects.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, projects.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.serverError(w, r, err)
	}
}
