package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/repository/query"
)

// TaskRepository implements domain.TaskRepository using SQLite.
type TaskRepository struct {
	db querier
}

// NewTaskRepository creates a new SQLite-backed TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db.SqlDB}
}

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	t := &domain.Task{}
	var projectID sql.NullInt64
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Author, &t.Status, &t.CreatedAt, &projectID); err != nil {
		return nil, err
	}
	if projectID.Valid {
		id := projectID.Int64
		t.ProjectID = &id
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	createdAt := now()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (name, description, author, status, created_at, project_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.Name, task.Description, task.Author, task.Status, createdAt, task.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get task id: %w", err)
	}

	task.ID = id
	task.CreatedAt = createdAt
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+query.TaskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	updated, err := r.updateOne(ctx, "update task",
		"UPDATE tasks SET name = ?, description = ? WHERE id = ?",
		task.ID, task.Name, task.Description, task.ID)
	if err != nil {
		return err
	}
	*task = *updated
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	if err := expectRow(result); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	return r.updateOne(ctx, "set task status",
		"UPDATE tasks SET status = ? WHERE id = ?", id, status, id)
}

func (r *TaskRepository) SetProject(ctx context.Context, id int64, projectID int64) (*domain.Task, error) {
	return r.updateOne(ctx, "set task project",
		"UPDATE tasks SET project_id = ? WHERE id = ?", id, projectID, id)
}

func (r *TaskRepository) ClearProject(ctx context.Context, projectID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET project_id = NULL WHERE project_id = ?", projectID)
	if err != nil {
		return 0, fmt.Errorf("clear task project: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) FindAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	q, args, err := query.Tasks(filter, query.Question)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// updateOne runs a single-row UPDATE and returns the task as stored afterwards.
func (r *TaskRepository) updateOne(ctx context.Context, op, q string, id int64, args ...any) (*domain.Task, error) {
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := expectRow(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
