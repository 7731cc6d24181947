package projects

import "errors"

// Sentinel errors for use with errors.Is().
var (
	// ErrProjectNotFound is returned when no project has the requested id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidInput is returned for malformed create or update data.
	ErrInvalidInput = errors.New("invalid input")
)
