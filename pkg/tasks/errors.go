package tasks

import "errors"

var (
	// ErrNotFound means the task does not exist or belongs to another user
	ErrNotFound = errors.New("task not found")
	// ErrNotDeletable is returned when deleting a task that is still pending
	ErrNotDeletable = errors.New(`only tasks with status "cancel" or "completed" can be deleted`)
	// ErrInvalidStatus is returned for a status outside pending, completed and cancel
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidInput is returned when a name or description does not fit its column
	ErrInvalidInput = errors.New("value too long")
)
