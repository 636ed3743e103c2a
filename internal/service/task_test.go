package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/task-tracker/internal/domain"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, "Write docs", "README and guides", "a@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Status != domain.TaskStatusNew {
		t.Fatalf("expected status New, got %s", task.Status)
	}
	if task.ProjectID != nil {
		t.Fatalf("expected no project, got %d", *task.ProjectID)
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	if _, err := tasks.Create(ctx, "ok", "valid desc", "a@example.com"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := tasks.Create(ctx, "Valid", "", "a@example.com"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_FindAll_SortByNameAsc(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	t1, _ := tasks.Create(ctx, "BBB", "second alphabetically", "a@example.com")
	t2, _ := tasks.Create(ctx, "AAA", "first alphabetically", "a@example.com")

	got, err := tasks.FindAll(ctx, domain.TaskFilter{SortBy: "name", SortDir: "asc"})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 || got[0].ID != t2.ID || got[1].ID != t1.ID {
		t.Fatalf("expected [T2, T1], got %+v", got)
	}
}

func TestTaskService_FindAll_FilterByAuthorAndStatus(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	mine, _ := tasks.Create(ctx, "Mine", "owned by alice", "alice@example.com")
	tasks.Create(ctx, "Theirs", "owned by bob", "bob@example.com")
	if _, err := tasks.Promote(ctx, mine.ID, domain.TaskStatusDone); err != nil {
		t.Fatalf("Promote: %v", err)
	}

	got, err := tasks.FindAll(ctx, domain.TaskFilter{Author: "alice@example.com", Status: domain.TaskStatusDone})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("expected only alice's done task, got %+v", got)
	}

	got, err = tasks.FindAll(ctx, domain.TaskFilter{Author: "bob@example.com", Status: domain.TaskStatusDone})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %+v", got)
	}
}

func TestTaskService_FindAll_InvalidInput(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	if _, err := tasks.FindAll(ctx, domain.TaskFilter{Status: "Blocked"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad status: expected ErrInvalidInput, got %v", err)
	}
	if _, err := tasks.FindAll(ctx, domain.TaskFilter{SortBy: "password"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad sort: expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_Promote(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, "Ship it", "release v1", "a@example.com")

	// Any transition is allowed, including backwards.
	for _, status := range []domain.TaskStatus{domain.TaskStatusDone, domain.TaskStatusNew, domain.TaskStatusInProgress} {
		got, err := tasks.Promote(ctx, task.ID, status)
		if err != nil {
			t.Fatalf("Promote(%s): %v", status, err)
		}
		if got.Status != status {
			t.Fatalf("expected status %s, got %s", status, got.Status)
		}
	}

	if _, err := tasks.Promote(ctx, task.ID, "done"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for lowercase status, got %v", err)
	}
	if _, err := tasks.Promote(ctx, 99999, domain.TaskStatusDone); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskService_AddToProject_WeakReference(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, "Floating", "no such project", "a@example.com")

	got, err := tasks.AddToProject(ctx, task.ID, 777)
	if err != nil {
		t.Fatalf("AddToProject: %v", err)
	}
	if got.ProjectID == nil || *got.ProjectID != 777 {
		t.Fatalf("expected projectId 777, got %v", got.ProjectID)
	}

	if _, err := tasks.AddToProject(ctx, 99999, 777); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	_, tasks := newTestServices(t)
	ctx := context.Background()

	task, _ := tasks.Create(ctx, "Draft", "first pass", "a@example.com")

	updated, err := tasks.Update(ctx, task.ID, "Final", "second pass")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Final" || updated.Status != domain.TaskStatusNew {
		t.Fatalf("unexpected task after update: %+v", updated)
	}

	deleted, err := tasks.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Name != "Final" {
		t.Fatalf("expected deleted task name Final, got %s", deleted.Name)
	}

	if _, err := tasks.GetByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
