package projects

import "context"

// Store persists projects and tasks with referential integrity: a task
// always references an existing project, and deleting a project removes its
// tasks in the same atomic operation.
type Store interface {
	// GetProject returns the project with its tasks, or nil if absent.
	GetProject(ctx context.Context, id string) (*Project, error)

	// ListProjects returns a page of projects, each with its tasks.
	ListProjects(ctx context.Context, offset, limit int) ([]Project, error)

	// CreateProject persists a new project under a generated id.
	CreateProject(ctx context.Context, name string) (*Project, error)

	// UpdateProject applies the non-nil patch fields and returns the updated
	// project, or nil if absent.
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error)

	// DeleteProject removes the project and all of its tasks. Returns false
	// if the project was absent.
	DeleteProject(ctx context.Context, id string) (bool, error)

	// GetTask returns the task, or nil if absent.
	GetTask(ctx context.Context, id string) (*Task, error)

	// ListTasksByProject returns a page of the project's tasks.
	ListTasksByProject(ctx context.Context, projectID string, offset, limit int) ([]Task, error)

	// CreateTask persists a new task under a generated id. Returns
	// ErrProjectNotFound if the parent project does not exist.
	CreateTask(ctx context.Context, projectID string, fields TaskFields) (*Task, error)

	// UpdateTask applies the non-nil patch fields and returns the updated
	// task, or nil if absent.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// DeleteTask removes the task. Returns false if the task was absent.
	DeleteTask(ctx context.Context, id string) (bool, error)
}
