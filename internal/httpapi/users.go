package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/aloks98/taskboard/internal/users"
)

type userCreateRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Birthday *time.Time `json:"birthday"`
}

type userEditRequest struct {
	Username string     `json:"username"`
	Password *string    `json:"password"`
	Birthday *time.Time `json:"birthday"`
}

// handleLogin verifies form credentials and issues a bearer token. Wrong
// password and unknown username produce identical responses.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if _, err := s.users.Authenticate(r.Context(), username, password); err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			unauthorized(w, "incorrect username or password")
			return
		}
		s.serverError(w, r, err)
		return
	}

	tokenString, _, err := s.tokens.Issue(username)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tokenString,
		"token_type":   "bearer",
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.users.Register(r.Context(), req.Username, req.Password, req.Birthday); err != nil {
		switch {
		case errors.Is(err, users.ErrExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, users.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeMessage(w, "User created successfully")
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	u, err := s.users.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "User does not exist")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	var req userEditRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := users.Patch{Password: req.Password, Birthday: req.Birthday}
	if _, err := s.users.Update(r.Context(), req.Username, patch); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			writeError(w, http.StatusBadRequest, "User does not exist")
		case errors.Is(err, users.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeMessage(w, "User updated successfully")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	username := r.PostFormValue("username")

	if err := s.users.Delete(r.Context(), username); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "User does not exist")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeMessage(w, "User deleted successfully")
}

// handleMe returns the subject of the presented token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"username": subjectFromContext(r.Context()),
	})
}
