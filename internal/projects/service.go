// Package projects implements the project/task resource store and the CRUD
// service layered on it: existence checks, partial updates and pagination.
package projects

import (
	"context"
	"fmt"
)

// Pagination bounds. Requests that omit skip/limit get the defaults; limits
// above MaxLimit are clamped to keep result sets bounded.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Service orchestrates resource store calls and enforces the API's error
// contract on top of them.
type Service struct {
	store Store
}

// NewService creates a resource service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateProject creates a project with a generated id.
func (s *Service) CreateProject(ctx context.Context, name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	return s.store.CreateProject(ctx, name)
}

// GetProject returns a project with its tasks.
func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

// ListProjects returns a page of projects.
func (s *Service) ListProjects(ctx context.Context, skip, limit int) ([]Project, error) {
	skip, limit = clampPage(skip, limit)
	return s.store.ListProjects(ctx, skip, limit)
}

// UpdateProject applies a partial update.
func (s *Service) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", ErrInvalidInput)
	}

	p, err := s.store.UpdateProject(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

// DeleteProject removes a project and all of its tasks. A second delete of
// the same id reports ErrProjectNotFound rather than silently succeeding.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteProject(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	return nil
}

// CreateTask creates a task under an existing project.
func (s *Service) CreateTask(ctx context.Context, projectID string, fields TaskFields) (*Task, error) {
	if err := validateTaskFields(fields); err != nil {
		return nil, err
	}

	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}

	return s.store.CreateTask(ctx, projectID, fields)
}

// GetTask returns a task.
func (s *Service) GetTask(ctx context.Context, id string) (*Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// ListTasks returns a page of a project's tasks.
func (s *Service) ListTasks(ctx context.Context, projectID string, skip, limit int) ([]Task, error) {
	skip, limit = clampPage(skip, limit)
	return s.store.ListTasksByProject(ctx, projectID, skip, limit)
}

// UpdateTask applies a partial update. Only non-nil patch fields change.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("%w: task name cannot be empty", ErrInvalidInput)
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *patch.Priority)
	}

	t, err := s.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// DeleteTask removes a task. A second delete reports ErrTaskNotFound.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

func validateTaskFields(fields TaskFields) error {
	if fields.Name == "" {
		return fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if fields.Deadline.IsZero() {
		return fmt.Errorf("%w: task deadline is required", ErrInvalidInput)
	}
	if !fields.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, fields.Priority)
	}
	return nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
