package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper to create a new mock service
func newMockService(t *testing.T) (*PostgresService, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	service := NewPostgresService(db)
	return service, mock, db
}

var taskRowColumns = []string{"task_id", "user_id", "task_name", "task_description", "status"}

const lockTaskQuery = `SELECT user_id, status FROM tasks WHERE task_id = \$1 FOR UPDATE`

func TestStatus(t *testing.T) {
	tests := []struct {
		status    Status
		valid     bool
		deletable bool
	}{
		{StatusPending, true, false},
		{StatusCompleted, true, true},
		{StatusCancel, true, true},
		{"cancelled", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.deletable, tt.status.Deletable())
		})
	}
}

func TestCreateTask(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tasks \(user_id, task_name, task_description\)`).
		WithArgs(int64(7), "Order flour", "5kg").
		WillReturnRows(sqlmock.NewRows([]string{"task_id", "status"}).AddRow(1, "pending"))

	task, err := service.CreateTask(context.Background(), 7, "Order flour", "5kg")
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.TaskID)
	assert.Equal(t, StatusPending, task.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_NameTooLong(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tasks`).
		WillReturnError(&pq.Error{Code: stringDataRightTruncation})

	_, err := service.CreateTask(context.Background(), 7, "x", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasks(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(1, 7, "Order flour", "", "pending").
			AddRow(2, 7, "Clean oven", "", "completed"))

	tasks, err := service.ListTasks(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, StatusCompleted, tasks[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskStatus(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE tasks SET status = \$1\s+WHERE task_id = \$2 AND user_id = \$3`).
			WithArgs("completed", int64(1), int64(7)).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).AddRow(1, 7, "Order flour", "", "completed"))

		task, err := service.UpdateTaskStatus(ctx, 7, 1, StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, task.Status)
	})

	t.Run("other user", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE tasks SET status`).
			WithArgs("cancel", int64(1), int64(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.UpdateTaskStatus(ctx, 9, 1, StatusCancel)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := service.UpdateTaskStatus(ctx, 7, 1, "done")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("pending task is kept", func(t *testing.T) {
		service, mock, db := newMockService(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockTaskQuery).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "pending"))
		mock.ExpectRollback()

		assert.ErrorIs(t, service.DeleteTask(ctx, 7, 1), ErrNotDeletable)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed task is removed", func(t *testing.T) {
		service, mock, db := newMockService(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockTaskQuery).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "completed"))
		mock.ExpectExec(`DELETE FROM tasks WHERE task_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, service.DeleteTask(ctx, 7, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ownership is checked before status", func(t *testing.T) {
		service, mock, db := newMockService(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockTaskQuery).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "pending"))
		mock.ExpectRollback()

		assert.ErrorIs(t, service.DeleteTask(ctx, 9, 1), ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task", func(t *testing.T) {
		service, mock, db := newMockService(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockTaskQuery).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, service.DeleteTask(ctx, 7, 404), ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure", func(t *testing.T) {
		service, mock, db := newMockService(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(lockTaskQuery).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "cancel"))
		mock.ExpectExec(`DELETE FROM tasks`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := service.DeleteTask(ctx, 7, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete task")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
