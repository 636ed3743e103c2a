package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/task-tracker/internal/domain"
)

// TaskService handles task CRUD, lifecycle changes and filtered listing.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create creates a task in status New with no project.
func (s *TaskService) Create(ctx context.Context, name, description, author string) (*domain.Task, error) {
	if err := validateTask(name, description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Name:        name,
		Description: description,
		Author:      author,
		Status:      domain.TaskStatusNew,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// GetByID returns a task by ID.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Update replaces a task's name and description.
func (s *TaskService) Update(ctx context.Context, id int64, name, description string) (*domain.Task, error) {
	if err := validateTask(name, description); err != nil {
		return nil, err
	}

	task := &domain.Task{ID: id, Name: name, Description: description}
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task and returns it.
func (s *TaskService) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.Delete(ctx, id)
}

// Promote sets the task status. Any known status is accepted regardless of
// the current one.
func (s *TaskService) Promote(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be New, In Progress, or Done", domain.ErrInvalidInput)
	}
	return s.tasks.SetStatus(ctx, id, status)
}

// AddToProject points the task at projectID. The project is not looked up.
func (s *TaskService) AddToProject(ctx context.Context, id, projectID int64) (*domain.Task, error) {
	return s.tasks.SetProject(ctx, id, projectID)
}

// FindAll returns every task matching filter, ordered as requested.
func (s *TaskService) FindAll(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status must be New, In Progress, or Done", domain.ErrInvalidInput)
	}
	return s.tasks.FindAll(ctx, filter)
}

func validateTask(name, description string) error {
	if err := checkLength("name", name, 3, 100); err != nil {
		return err
	}
	return checkLength("description", description, 3, 500)
}
