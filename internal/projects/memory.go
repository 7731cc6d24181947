package projects

import (
	"context"
	"sort"
	"sync"

	"github.com/aloks98/taskboard/internal/ids"
)

// MemoryStore is an in-memory Store implementation for tests and development.
// A single mutex covers projects and tasks, so the cascade delete is atomic
// with respect to concurrent task creation.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]Project // Tasks field unused; tasks live in tasks
	tasks    map[string]Task
}

// NewMemoryStore creates an empty in-memory resource store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]Project),
		tasks:    make(map[string]Task),
	}
}

// GetProject returns the project with its tasks, or nil if absent.
func (s *MemoryStore) GetProject(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	p.Tasks = s.tasksOf(id, 0, -1)
	return &p, nil
}

// ListProjects returns a page of projects ordered by id, each with its tasks.
func (s *MemoryStore) ListProjects(ctx context.Context, offset, limit int) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page := paginate(all, offset, limit)
	for i := range page {
		page[i].Tasks = s.tasksOf(page[i].ID, 0, -1)
	}
	return page, nil
}

// CreateProject persists a new project under a generated id.
func (s *MemoryStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[id] = Project{ID: id, Name: name}
	return &Project{ID: id, Name: name, Tasks: []Task{}}, nil
}

// UpdateProject applies the non-nil patch fields.
func (s *MemoryStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	s.projects[id] = p

	p.Tasks = s.tasksOf(id, 0, -1)
	return &p, nil
}

// DeleteProject removes the project and all of its tasks atomically.
func (s *MemoryStore) DeleteProject(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	for taskID, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
	return true, nil
}

// GetTask returns the task, or nil if absent.
func (s *MemoryStore) GetTask(ctx context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ListTasksByProject returns a page of the project's tasks ordered by id.
func (s *MemoryStore) ListTasksByProject(ctx context.Context, projectID string, offset, limit int) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasksOf(projectID, offset, limit), nil
}

// CreateTask persists a new task; the parent check and the insert happen
// under the same lock as the cascade delete.
func (s *MemoryStore) CreateTask(ctx context.Context, projectID string, fields TaskFields) (*Task, error) {
	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, ErrProjectNotFound
	}

	t := Task{
		ID:          id,
		Name:        fields.Name,
		Description: fields.Description,
		Deadline:    fields.Deadline,
		Priority:    fields.Priority,
		Completed:   fields.Completed,
		ProjectID:   projectID,
	}
	s.tasks[id] = t
	return &t, nil
}

// UpdateTask applies the non-nil patch fields.
func (s *MemoryStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Deadline != nil {
		t.Deadline = *patch.Deadline
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	s.tasks[id] = t
	return &t, nil
}

// DeleteTask removes the task.
func (s *MemoryStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

// tasksOf returns a project's tasks ordered by id. limit < 0 means no limit.
// Callers must hold at least the read lock.
func (s *MemoryStore) tasksOf(projectID string, offset, limit int) []Task {
	owned := []Task{}
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			owned = append(owned, t)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return paginate(owned, offset, limit)
}

// paginate slices a sorted result set. limit < 0 means no limit.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var _ Store = (*MemoryStore)(nil)
