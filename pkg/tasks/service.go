package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const taskColumns = `task_id, user_id, task_name, task_description, status`

// stringDataRightTruncation is the PostgreSQL SQLSTATE for an over-long value
const stringDataRightTruncation = "22001"

// PostgresService implements the Service interface using PostgreSQL
type PostgresService struct {
	db *sql.DB
}

// NewPostgresService creates a new PostgresService
func NewPostgresService(db *sql.DB) *PostgresService {
	return &PostgresService{db: db}
}

// CreateTask adds a pending task for userID
func (s *PostgresService) CreateTask(ctx context.Context, userID int64, name, description string) (*Task, error) {
	task := &Task{UserID: userID, TaskName: name, TaskDescription: description}

	query := `
		INSERT INTO tasks (user_id, task_name, task_description)
		VALUES ($1, $2, $3)
		RETURNING task_id, status
	`
	if err := s.db.QueryRowContext(ctx, query, userID, name, description).Scan(&task.TaskID, &task.Status); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == stringDataRightTruncation {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks of userID
func (s *PostgresService) ListTasks(ctx context.Context, userID int64) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY task_id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.TaskID, &t.UserID, &t.TaskName, &t.TaskDescription, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task owned by userID to status
func (s *PostgresService) UpdateTaskStatus(ctx context.Context, userID, taskID int64, status Status) (*Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	query := `
		UPDATE tasks SET status = $1
		WHERE task_id = $2 AND user_id = $3
		RETURNING ` + taskColumns
	task := &Task{}
	err := s.db.QueryRowContext(ctx, query, status, taskID, userID).
		Scan(&task.TaskID, &task.UserID, &task.TaskName, &task.TaskDescription, &task.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a completed or cancelled task owned by userID.
// The row is locked between the status check and the delete.
func (s *PostgresService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID int64
	var status Status
	err = tx.QueryRowContext(ctx, `SELECT user_id, status FROM tasks WHERE task_id = $1 FOR UPDATE`, taskID).
		Scan(&ownerID, &status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}
	if ownerID != userID {
		return ErrNotFound
	}
	if !status.Deletable() {
		return ErrNotDeletable
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task delete: %w", err)
	}
	return nil
}
