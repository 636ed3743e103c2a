package domain

import (
	"context"
	"time"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "New"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a unit of work. ProjectID is a weak reference: it is never
// checked against the projects table when assigned.
type Task struct {
	ID          int64
	Name        string
	Description string
	Author      string
	Status      TaskStatus
	CreatedAt   time.Time
	ProjectID   *int64
}

// SortDirAsc is the only sort direction value treated as ascending.
// Every other value, including empty, sorts descending.
const SortDirAsc = "asc"

// TaskFilter selects and orders tasks. Nil or empty fields are not applied.
type TaskFilter struct {
	Author    string
	Status    TaskStatus
	ProjectID *int64
	CreatedAt *time.Time
	SortBy    string
	SortDir   string
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64) (*Task, error)
	SetStatus(ctx context.Context, id int64, status TaskStatus) (*Task, error)
	SetProject(ctx context.Context, id int64, projectID int64) (*Task, error)
	// ClearProject sets the project reference to null on every task that
	// points at projectID and returns how many tasks were modified.
	ClearProject(ctx context.Context, projectID int64) (int64, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, error)
}
