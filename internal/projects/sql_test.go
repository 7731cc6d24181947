package projects

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aloks98/taskboard/internal/database"
)

// newTestDB opens a migrated in-memory SQLite database unique to the test.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(&database.Config{Dialect: database.SQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sqlTestFields(name string) TaskFields {
	return TaskFields{
		Name:     name,
		Deadline: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Priority: PriorityLow,
	}
}

func TestSQLProjectRoundTrip(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	p, err := store.CreateProject(ctx, "homework")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected the project to be found")
	}
	if got.Name != "homework" {
		t.Errorf("expected name homework, got %s", got.Name)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Errorf("expected an empty task list, got %v", got.Tasks)
	}

	missing, err := store.GetProject(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for an unknown project")
	}
}

func TestSQLTaskRoundTrip(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	p, err := store.CreateProject(ctx, "homework")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created, err := store.CreateTask(ctx, p.ID, sqlTestFields("write report"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected the task to be found")
	}
	if got.Priority != PriorityLow {
		t.Errorf("expected priority low, got %s", got.Priority)
	}
	if !got.Deadline.Equal(created.Deadline) {
		t.Errorf("expected deadline %v, got %v", created.Deadline, got.Deadline)
	}
	if got.ProjectID != p.ID {
		t.Errorf("expected project id %s, got %s", p.ID, got.ProjectID)
	}

	// The parent now embeds the task.
	parent, err := store.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parent.Tasks) != 1 || parent.Tasks[0].ID != created.ID {
		t.Errorf("expected the project to embed its task, got %v", parent.Tasks)
	}
}

func TestSQLCreateTaskMissingProject(t *testing.T) {
	store := NewSQLStore(newTestDB(t))

	if _, err := store.CreateTask(context.Background(), "missing", sqlTestFields("x")); err != ErrProjectNotFound {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestSQLCascadeDelete(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	p, err := store.CreateProject(ctx, "homework")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err := store.CreateTask(ctx, p.ID, sqlTestFields("write report"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := store.DeleteProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected the delete to report success")
	}

	got, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected the cascade to remove the task")
	}
}

func TestSQLUpdateTaskPartial(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	p, err := store.CreateProject(ctx, "homework")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err := store.CreateTask(ctx, p.ID, sqlTestFields("write report"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := true
	priority := PriorityHigh
	updated, err := store.UpdateTask(ctx, task.ID, TaskPatch{Completed: &completed, Priority: &priority})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Completed || updated.Priority != PriorityHigh {
		t.Errorf("expected patched fields to change, got %+v", updated)
	}
	if updated.Name != task.Name || !updated.Deadline.Equal(task.Deadline) {
		t.Error("expected untouched fields to be preserved")
	}

	absent, err := store.UpdateTask(ctx, "missing", TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if absent != nil {
		t.Error("expected nil for an unknown task")
	}
}

func TestSQLListPagination(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	p, err := store.CreateProject(ctx, "homework")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.CreateTask(ctx, p.ID, sqlTestFields(fmt.Sprintf("task-%d", i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	page, err := store.ListTasksByProject(ctx, p.ID, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(page))
	}

	rest, err := store.ListTasksByProject(ctx, p.ID, 2, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 3 {
		t.Errorf("expected 3 tasks after skipping 2, got %d", len(rest))
	}

	projects, err := store.ListProjects(ctx, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || len(projects[0].Tasks) != 5 {
		t.Errorf("expected one project with five tasks, got %v", projects)
	}
}
