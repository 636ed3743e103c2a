package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/msomdec/task-tracker/internal/domain"
)

const projectColumns = "id, name, description, author, created_at"

type ProjectRepository struct {
	db querier
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{db: db.Pool}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Author, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	createdAt := now()
	query := `INSERT INTO projects (name, description, author, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	if err := r.db.QueryRow(ctx, query, project.Name, project.Description, project.Author, createdAt).Scan(&project.ID); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	project.CreatedAt = createdAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	updated, err := scanProject(r.db.QueryRow(ctx,
		`UPDATE projects SET name = $1, description = $2 WHERE id = $3
		 RETURNING `+projectColumns,
		project.Name, project.Description, project.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	*project = *updated
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`DELETE FROM projects WHERE id = $1 RETURNING `+projectColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return p, nil
}
