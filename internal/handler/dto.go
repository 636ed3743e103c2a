package handler

import (
	"time"

	"github.com/msomdec/task-tracker/internal/domain"
)

// ProjectDTO is the JSON representation of a project.
type ProjectDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	CreatedAt   string `json:"createdAt"`
}

func toProjectDTO(p *domain.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Author:      p.Author,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339Nano),
	}
}

func toProjectDTOs(projects []domain.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i])
	}
	return dtos
}

// TaskDTO is the JSON representation of a task. ProjectID is null when the
// task belongs to no project.
type TaskDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	ProjectID   *int64 `json:"projectId"`
}

func toTaskDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Author:      t.Author,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		ProjectID:   t.ProjectID,
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = toTaskDTO(&tasks[i])
	}
	return dtos
}

type projectResponse struct {
	Message string     `json:"message"`
	Project ProjectDTO `json:"project"`
}

type projectDeleteResponse struct {
	Message     string     `json:"message"`
	Project     ProjectDTO `json:"project"`
	TaskUpdated int64      `json:"taskUpdated"`
}

type taskResponse struct {
	Message string  `json:"message"`
	Task    TaskDTO `json:"task"`
}
