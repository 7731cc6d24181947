package projects

import (
	"encoding/json"
	"fmt"
	"time"
)

// Priority is the urgency of a task.
type Priority string

// Priority values, as stored and as sent on the wire.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// UnmarshalJSON rejects unknown priority values at decode time.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := Priority(s)
	if !v.Valid() {
		return fmt.Errorf("invalid priority: %q", s)
	}
	*p = v
	return nil
}

// Project is a collection of tasks. A project exclusively owns its tasks;
// deleting it destroys them.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Task belongs to exactly one existing project at all times.
type Task struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	ProjectID   string    `json:"project_id"`
}

// TaskFields is the input for creating a task.
type TaskFields struct {
	Name        string
	Description string
	Deadline    time.Time
	Priority    Priority
	Completed   bool
}

// ProjectPatch lists the project fields a partial update may change.
type ProjectPatch struct {
	Name *string
}

// TaskPatch lists the task fields a partial update may change. Nil fields
// leave the stored value untouched.
type TaskPatch struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	Priority    *Priority
	Completed   *bool
}
