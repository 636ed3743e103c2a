package domain

import (
	"context"
	"time"
)

// Project groups tasks. Author is the creator's email.
type Project struct {
	ID          int64
	Name        string
	Description string
	Author      string
	CreatedAt   time.Time
}

// DeletedProject is the result of a cascading project delete.
type DeletedProject struct {
	Project      Project
	TasksUpdated int64
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	// Delete removes the project and returns the row as it was before deletion.
	Delete(ctx context.Context, id int64) (*Project, error)
}
