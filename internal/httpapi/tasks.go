package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aloks98/taskboard/internal/projects"
)

type taskCreateRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Deadline    time.Time         `json:"deadline"`
	Priority    projects.Priority `json:"priority"`
	Completed   bool              `json:"completed"`
}

type taskPatchRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Deadline    *time.Time         `json:"deadline"`
	Priority    *projects.Priority `json:"priority"`
	Completed   *bool              `json:"completed"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := projects.TaskFields{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}

	t, err := s.projects.CreateTask(r.Context(), chi.URLParam(r, "projectID"), fields)
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.projects.ListTasks(r.Context(), chi.URLParam(r, "projectID"), skip, limit)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.projects.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := projects.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}

	t, err := s.projects.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), patch)
	if err != nil {
		s.projectError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		s.projectError(w, r, err)
		return
	}

	writeMessage(w, "Task deleted successfully")
}
