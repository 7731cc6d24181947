package projects

import (
	"context"
	"database/sql"

	"github.com/aloks98/taskboard/internal/database"
	"github.com/aloks98/taskboard/internal/ids"
)

// SQLStore implements Store using a SQL database. The schema enforces the
// task -> project foreign key with ON DELETE CASCADE, so a project delete
// removes its tasks in one atomic statement.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a SQL-backed resource store.
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// GetProject returns the project with its tasks, or nil if absent.
func (s *SQLStore) GetProject(ctx context.Context, id string) (*Project, error) {
	query := s.db.Rebind(`SELECT id, name FROM projects WHERE id = $1`)

	p := &Project{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Tasks, err = s.tasksForProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns a page of projects ordered by id, each with its tasks.
func (s *SQLStore) ListProjects(ctx context.Context, offset, limit int) ([]Project, error) {
	query := s.db.Rebind(`SELECT id, name FROM projects ORDER BY id LIMIT $1 OFFSET $2`)

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	projects := []Project{}
	for rows.Next() {
		p := Project{}
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		projects[i].Tasks, err = s.tasksForProject(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// CreateProject persists a new project under a generated id.
func (s *SQLStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	query := s.db.Rebind(`INSERT INTO projects (id, name) VALUES ($1, $2)`)
	if _, err := s.db.ExecContext(ctx, query, id, name); err != nil {
		return nil, err
	}

	return &Project{ID: id, Name: name, Tasks: []Task{}}, nil
}

// UpdateProject applies the non-nil patch fields.
func (s *SQLStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*Project, error) {
	if patch.Name != nil {
		query := s.db.Rebind(`UPDATE projects SET name = $1 WHERE id = $2`)
		if _, err := s.db.ExecContext(ctx, query, *patch.Name, id); err != nil {
			return nil, err
		}
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes the project; the cascade removes its tasks.
func (s *SQLStore) DeleteProject(ctx context.Context, id string) (bool, error) {
	query := s.db.Rebind(`DELETE FROM projects WHERE id = $1`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetTask returns the task, or nil if absent.
func (s *SQLStore) GetTask(ctx context.Context, id string) (*Task, error) {
	query := s.db.Rebind(`SELECT id, name, description, deadline, priority, completed, project_id
		FROM tasks WHERE id = $1`)

	return scanTask(s.db.QueryRowContext(ctx, query, id))
}

// ListTasksByProject returns a page of the project's tasks ordered by id.
func (s *SQLStore) ListTasksByProject(ctx context.Context, projectID string, offset, limit int) ([]Task, error) {
	query := s.db.Rebind(`SELECT id, name, description, deadline, priority, completed, project_id
		FROM tasks WHERE project_id = $1 ORDER BY id LIMIT $2 OFFSET $3`)

	rows, err := s.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// CreateTask persists a new task. The parent check and the insert run in one
// transaction; if a concurrent cascade delete wins the race, the foreign key
// rejects the insert and the result is ErrProjectNotFound, never an orphan.
func (s *SQLStore) CreateTask(ctx context.Context, projectID string, fields TaskFields) (*Task, error) {
	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	query := s.db.Rebind(`SELECT 1 FROM projects WHERE id = $1`)
	err = tx.QueryRowContext(ctx, query, projectID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	query = s.db.Rebind(`INSERT INTO tasks (id, name, description, deadline, priority, completed, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if _, err := tx.ExecContext(ctx, query,
		id, fields.Name, fields.Description, fields.Deadline, string(fields.Priority), fields.Completed, projectID,
	); err != nil {
		return nil, s.insertTaskError(ctx, projectID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, s.insertTaskError(ctx, projectID, err)
	}

	return &Task{
		ID:          id,
		Name:        fields.Name,
		Description: fields.Description,
		Deadline:    fields.Deadline,
		Priority:    fields.Priority,
		Completed:   fields.Completed,
		ProjectID:   projectID,
	}, nil
}

// insertTaskError distinguishes a lost race against a cascade delete from a
// genuine store failure.
func (s *SQLStore) insertTaskError(ctx context.Context, projectID string, err error) error {
	var exists int
	query := s.db.Rebind(`SELECT 1 FROM projects WHERE id = $1`)
	if checkErr := s.db.QueryRowContext(ctx, query, projectID).Scan(&exists); checkErr == sql.ErrNoRows {
		return ErrProjectNotFound
	}
	return err
}

// UpdateTask applies the non-nil patch fields.
func (s *SQLStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	query := s.db.Rebind(`SELECT id, name, description, deadline, priority, completed, project_id
		FROM tasks WHERE id = $1`)
	t, err := scanTask(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if t == nil {
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

	query = s.db.Rebind(`UPDATE tasks SET name = $1, description = $2, deadline = $3, priority = $4, completed = $5
		WHERE id = $6`)
	if _, err := tx.ExecContext(ctx, query,
		t.Name, t.Description, t.Deadline, string(t.Priority), t.Completed, id,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes the task.
func (s *SQLStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	query := s.db.Rebind(`DELETE FROM tasks WHERE id = $1`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// tasksForProject loads every task owned by a project, ordered by id.
func (s *SQLStore) tasksForProject(ctx context.Context, projectID string) ([]Task, error) {
	query := s.db.Rebind(`SELECT id, name, description, deadline, priority, completed, project_id
		FROM tasks WHERE project_id = $1 ORDER BY id`)

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// rowScanner covers sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, returning nil (not an error) on no rows.
func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var priority string

	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Deadline, &priority, &t.Completed, &t.ProjectID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.Priority = Priority(priority)
	return t, nil
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	tasks := []Task{}
	for rows.Next() {
		t := Task{}
		var priority string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Deadline, &priority, &t.Completed, &t.ProjectID); err != nil {
			return nil, err
		}
		t.Priority = Priority(priority)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

var _ Store = (*SQLStore)(nil)
