package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/repository/query"
)

type TaskRepository struct {
	db querier
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{db: db.Pool}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Author, &status, &t.CreatedAt, &t.ProjectID); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	createdAt := now()
	q := `INSERT INTO tasks (name, description, author, status, created_at, project_id)
		  VALUES ($1, $2, $3, $4, $5, $6)
		  RETURNING id`

	err := r.db.QueryRow(ctx, q,
		task.Name, task.Description, task.Author, string(task.Status), createdAt, task.ProjectID,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	task.CreatedAt = createdAt
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return r.one(ctx, "get task", `SELECT `+query.TaskColumns+` FROM tasks WHERE id = $1`, id)
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	updated, err := r.one(ctx, "update task",
		`UPDATE tasks SET name = $1, description = $2 WHERE id = $3 RETURNING `+query.TaskColumns,
		task.Name, task.Description, task.ID)
	if err != nil {
		return err
	}
	*task = *updated
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	return r.one(ctx, "delete task", `DELETE FROM tasks WHERE id = $1 RETURNING `+query.TaskColumns, id)
}

func (r *TaskRepository) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	return r.one(ctx, "set task status",
		`UPDATE tasks SET status = $1 WHERE id = $2 RETURNING `+query.TaskColumns, string(status), id)
}

func (r *TaskRepository) SetProject(ctx context.Context, id int64, projectID int64) (*domain.Task, error) {
	return r.one(ctx, "set task project",
		`UPDATE tasks SET project_id = $1 WHERE id = $2 RETURNING `+query.TaskColumns, projectID, id)
}

func (r *TaskRepository) ClearProject(ctx context.Context, projectID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE tasks SET project_id = NULL WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear task project: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) FindAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	q, args, err := query.Tasks(filter, query.Dollar)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// one runs a statement returning at most one task row.
func (r *TaskRepository) one(ctx context.Context, op, q string, args ...any) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return t, nil
}
