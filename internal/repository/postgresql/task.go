package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/task"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.DueDate,
		t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		       t.created_by, t.created_at, t.updated_at,
		       p.full_name AS creator_name
		FROM tasks t
		LEFT JOIN profiles p ON p.user_id = t.created_by
		WHERE t.id = $1
	`

	var t task.Task
	var status, priority string
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &status, &priority, &t.DueDate,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		&t.CreatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	return t, nil
}

// List implements task.TaskRepository.
func (r *taskRepository) List(ctx context.Context) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		       t.created_by, t.created_at, t.updated_at,
		       p.full_name AS creator_name
		FROM tasks t
		LEFT JOIN profiles p ON p.user_id = t.created_by
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var status, priority string
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &status, &priority, &t.DueDate,
			&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
			&t.CreatorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Status = task.Status(status)
		t.Priority = task.Priority(priority)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, due_date = $5, updated_at = NOW()
		WHERE id = $1
	`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Priority),
		t.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// UpdateStatus implements task.TaskRepository.
func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status task.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}
