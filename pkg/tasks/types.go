package tasks

import "context"

// Status is the lifecycle state of a task
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancel    Status = "cancel"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancel:
		return true
	}
	return false
}

// Deletable reports whether a task in status s may be removed
func (s Status) Deletable() bool {
	return s == StatusCompleted || s == StatusCancel
}

// Task is a personal to-do entry
type Task struct {
	TaskID          int64  `json:"task_id"`
	UserID          int64  `json:"user_id"`
	TaskName        string `json:"task_name"`
	TaskDescription string `json:"task_description"`
	Status          Status `json:"status"`
}

// Service manages the task list of each user
type Service interface {
	CreateTask(ctx context.Context, userID int64, name, description string) (*Task, error)
	ListTasks(ctx context.Context, userID int64) ([]Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID int64, status Status) (*Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}
