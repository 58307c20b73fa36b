package repository

import (
	"context"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// GetActive returns every task that can still produce a reminder:
// notify enabled, not completed, due date set.
func (r *TaskRepository) GetActive(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT task_id, user_id, title, description, notify, due_date, due_time,
		        recurrence, notify_before, completed, notification_sent, created_at, updated_at
		 FROM tasks WHERE notify = true AND completed = false AND due_date <> ''
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.TaskID, &task.UserID, &task.Title, &task.Description,
			&task.Notify, &task.DueDate, &task.DueTime, &task.Recurrence, &task.NotifyBefore,
			&task.Completed, &task.NotificationSent, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	task := &models.Task{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT task_id, user_id, title, description, notify, due_date, due_time,
		        recurrence, notify_before, completed, notification_sent, created_at, updated_at
		 FROM tasks WHERE task_id = $1`,
		taskID,
	).Scan(&task.TaskID, &task.UserID, &task.Title, &task.Description, &task.Notify,
		&task.DueDate, &task.DueTime, &task.Recurrence, &task.NotifyBefore,
		&task.Completed, &task.NotificationSent, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// SetNotificationSent flips the one-shot sent flag. Only the server
// sweep writes this, and only for tasks without recurrence.
func (r *TaskRepository) SetNotificationSent(ctx context.Context, taskID string, sent bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE tasks SET notification_sent = $1, updated_at = now() WHERE task_id = $2`,
		sent, taskID,
	)
	return err
}
