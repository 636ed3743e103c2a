package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/service"
)

func newTestServices(t *testing.T) (*service.ProjectService, *service.TaskService) {
	t.Helper()
	db := newTestDB(t)
	return service.NewProjectService(db, db), service.NewTaskService(db.Tasks())
}

func TestProjectService_CreateAndGet(t *testing.T) {
	projects, _ := newTestServices(t)
	ctx := context.Background()

	p, err := projects.Create(ctx, "Website", "Public site rewrite", "alice@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected project ID to be set")
	}

	got, err := projects.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Author != "alice@example.com" {
		t.Fatalf("expected author alice@example.com, got %s", got.Author)
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	projects, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := projects.Create(ctx, "ab", "valid desc", "a@example.com"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("short name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := projects.Create(ctx, "Valid", strings.Repeat("x", 501), "a@example.com"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("long description: expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectService_Update(t *testing.T) {
	projects, _ := newTestServices(t)
	ctx := context.Background()

	p, err := projects.Create(ctx, "Before", "Old description", "a@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := projects.Update(ctx, p.ID, "After", "New description")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "After" || updated.Author != "a@example.com" {
		t.Fatalf("unexpected project after update: %+v", updated)
	}

	if _, err := projects.Update(ctx, 99999, "After", "New description"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_Delete_ClearsTaskReferences(t *testing.T) {
	projects, tasks := newTestServices(t)
	ctx := context.Background()

	p, err := projects.Create(ctx, "Project P", "Cascade target", "a@example.com")
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}
	t1, err := tasks.Create(ctx, "Task one", "first", "a@example.com")
	if err != nil {
		t.Fatalf("Create task: %v", err)
	}
	if _, err := tasks.AddToProject(ctx, t1.ID, p.ID); err != nil {
		t.Fatalf("AddToProject: %v", err)
	}

	deleted, err := projects.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.TasksUpdated != 1 {
		t.Fatalf("expected 1 task updated, got %d", deleted.TasksUpdated)
	}
	if deleted.Project.Name != "Project P" {
		t.Fatalf("expected deleted project name Project P, got %s", deleted.Project.Name)
	}

	got, err := tasks.GetByID(ctx, t1.ID)
	if err != nil {
		t.Fatalf("GetByID task: %v", err)
	}
	if got.ProjectID != nil {
		t.Fatalf("expected projectId to be cleared, got %d", *got.ProjectID)
	}

	if _, err := projects.GetByID(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected project to be gone, got %v", err)
	}
}

func TestProjectService_Delete_CountsOnlyReferencingTasks(t *testing.T) {
	projects, tasks := newTestServices(t)
	ctx := context.Background()

	p, _ := projects.Create(ctx, "Project P", "Cascade target", "a@example.com")
	q, _ := projects.Create(ctx, "Project Q", "Survivor", "a@example.com")

	for i, target := range []int64{p.ID, p.ID, p.ID, q.ID} {
		task, err := tasks.Create(ctx, "Task "+string(rune('A'+i)), "desc", "a@example.com")
		if err != nil {
			t.Fatalf("Create task: %v", err)
		}
		if _, err := tasks.AddToProject(ctx, task.ID, target); err != nil {
			t.Fatalf("AddToProject: %v", err)
		}
	}
	if _, err := tasks.Create(ctx, "Loose task", "no project", "a@example.com"); err != nil {
		t.Fatalf("Create task: %v", err)
	}

	deleted, err := projects.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.TasksUpdated != 3 {
		t.Fatalf("expected 3 tasks updated, got %d", deleted.TasksUpdated)
	}

	remaining, err := tasks.FindAll(ctx, domain.TaskFilter{ProjectID: &q.ID})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 task still in project Q, got %d", len(remaining))
	}
}

func TestProjectService_Delete_NoTasks(t *testing.T) {
	projects, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := projects.Create(ctx, "Empty", "No tasks here", "a@example.com")

	deleted, err := projects.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.TasksUpdated != 0 {
		t.Fatalf("expected 0 tasks updated, got %d", deleted.TasksUpdated)
	}
}

func TestProjectService_Delete_NotFoundStillClearsTasks(t *testing.T) {
	projects, tasks := newTestServices(t)
	ctx := context.Background()

	// A weak reference to a project id that never existed.
	task, _ := tasks.Create(ctx, "Orphan", "points nowhere", "a@example.com")
	if _, err := tasks.AddToProject(ctx, task.ID, 4242); err != nil {
		t.Fatalf("AddToProject: %v", err)
	}

	if _, err := projects.Delete(ctx, 4242); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectID != nil {
		t.Fatalf("expected dangling reference to be cleared, got %d", *got.ProjectID)
	}
}

// failingStore fails ClearProject so the cascade aborts before the delete.
type failingStore struct {
	domain.Store
	tasks failingTasks
}

func (s failingStore) Tasks() domain.TaskRepository { return s.tasks }

type failingTasks struct {
	domain.TaskRepository
}

func (failingTasks) ClearProject(context.Context, int64) (int64, error) {
	return 0, errors.New("disk full")
}

type passthroughTx struct {
	store domain.Store
}

func (p passthroughTx) InTx(_ context.Context, fn func(tx domain.Store) error) error {
	return fn(p.store)
}

func TestProjectService_Delete_ClearFailureKeepsProject(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := &domain.Project{Name: "Keep", Description: "must survive", Author: "a@example.com"}
	if err := db.Projects().Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	store := failingStore{Store: db, tasks: failingTasks{TaskRepository: db.Tasks()}}
	projects := service.NewProjectService(store, passthroughTx{store: store})

	_, err := projects.Delete(ctx, p.ID)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected storage error, got %v", err)
	}

	if _, err := db.Projects().GetByID(ctx, p.ID); err != nil {
		t.Fatalf("expected project to remain, got %v", err)
	}
}

func TestProjectService_List(t *testing.T) {
	projects, _ := newTestServices(t)
	ctx := context.Background()

	list, err := projects.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", list)
	}

	projects.Create(ctx, "First", "one", "a@example.com")
	projects.Create(ctx, "Second", "two", "a@example.com")

	list, err = projects.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(list))
	}
}
