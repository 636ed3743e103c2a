package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/task-tracker/internal/domain"
)

// ProjectService handles project CRUD and the task cascade on delete.
type ProjectService struct {
	store domain.Store
	tx    domain.Transactor
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store domain.Store, tx domain.Transactor) *ProjectService {
	return &ProjectService{store: store, tx: tx}
}

// Create creates a project authored by the given email.
func (s *ProjectService) Create(ctx context.Context, name, description, author string) (*domain.Project, error) {
	if err := validateProject(name, description); err != nil {
		return nil, err
	}

	project := &domain.Project{Name: name, Description: description, Author: author}
	if err := s.store.Projects().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// GetByID returns a project by ID.
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.Projects().GetByID(ctx, id)
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.store.Projects().List(ctx)
}

// Update replaces a project's name and description.
func (s *ProjectService) Update(ctx context.Context, id int64, name, description string) (*domain.Project, error) {
	if err := validateProject(name, description); err != nil {
		return nil, err
	}

	project := &domain.Project{ID: id, Name: name, Description: description}
	if err := s.store.Projects().Update(ctx, project); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete clears the project reference on every task pointing at id, then
// deletes the project. Both steps share one transaction. The task cleanup
// runs before the project's existence is known and is committed even when
// the project turns out not to exist, in which case ErrNotFound is returned.
func (s *ProjectService) Delete(ctx context.Context, id int64) (*domain.DeletedProject, error) {
	var (
		result   *domain.DeletedProject
		notFound bool
	)

	err := s.tx.InTx(ctx, func(tx domain.Store) error {
		cleared, err := tx.Tasks().ClearProject(ctx, id)
		if err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}

		project, err := tx.Projects().Delete(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound = true
				return nil
			}
			return fmt.Errorf("delete project: %w", err)
		}

		result = &domain.DeletedProject{Project: *project, TasksUpdated: cleared}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, domain.ErrNotFound
	}

	slog.Info("project deleted", "project_id", id, "tasks_updated", result.TasksUpdated)
	return result, nil
}

func validateProject(name, description string) error {
	if err := checkLength("name", name, 3, 100); err != nil {
		return err
	}
	return checkLength("description", description, 3, 500)
}
