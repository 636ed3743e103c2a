package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/task-tracker/internal/domain"
)

// ProjectRepository implements domain.ProjectRepository using SQLite.
type ProjectRepository struct {
	db querier
}

// NewProjectRepository creates a new SQLite-backed ProjectRepository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db.SqlDB}
}

const projectColumns = "id, name, description, author, created_at"

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	p := &domain.Project{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Author, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	createdAt := now()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description, author, created_at)
		 VALUES (?, ?, ?, ?)`,
		project.Name, project.Description, project.Author, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get project id: %w", err)
	}

	project.ID = id
	project.CreatedAt = createdAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, description = ? WHERE id = ?",
		project.Name, project.Description, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if err := expectRow(result); err != nil {
		return err
	}

	updated, err := r.GetByID(ctx, project.ID)
	if err != nil {
		return err
	}
	*project = *updated
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	if err := expectRow(result); err != nil {
		return nil, err
	}
	return p, nil
}

// expectRow maps a statement that touched no rows to domain.ErrNotFound.
func expectRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
