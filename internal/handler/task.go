package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/service"
)

// TaskHandler serves the /tasks API.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a task authored by the caller.
// POST /tasks
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req taskRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Name, req.Description, identity.Email)
	if err != nil {
		writeServiceError(w, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse{
		Message: "Task [" + task.Name + "] created successfully",
		Task:    toTaskDTO(task),
	})
}

// HandleList returns tasks matching the query parameters.
// GET /tasks?author=&status=&projectId=&createdAt=&sortBy=&sortDir=
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.TaskFilter{
		Author:  q.Get("author"),
		Status:  domain.TaskStatus(q.Get("status")),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}

	if v := q.Get("projectId"); v != "" {
		projectID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid projectId.")
			return
		}
		filter.ProjectID = &projectID
	}
	if v := q.Get("createdAt"); v != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid createdAt, expected RFC 3339.")
			return
		}
		filter.CreatedAt = &createdAt
	}

	tasks, err := h.tasks.FindAll(r.Context(), filter)
	if err != nil {
		writeServiceError(w, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleGet returns one task.
// GET /tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleUpdate replaces a task's name and description.
// PATCH /tasks/{id}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	var req taskRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Message: "Task [" + task.Name + "] updated successfully",
		Task:    toTaskDTO(task),
	})
}

// HandleDelete removes a task.
// DELETE /tasks/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	task, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, "delete task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Message: "Task [" + task.Name + "] deleted successfully",
		Task:    toTaskDTO(task),
	})
}

// HandlePromote sets a task's status.
// PATCH /tasks/{id}/promote
// Request: {"status":"New"|"In Progress"|"Done"}
func (h *TaskHandler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}

	var req struct {
		Status domain.TaskStatus `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Promote(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, "promote task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Message: "Task [" + task.Name + "] promoted to [" + string(req.Status) + "]",
		Task:    toTaskDTO(task),
	})
}

// HandleAddToProject points a task at a project. The project is not
// required to exist.
// PATCH /tasks/{id}/add-to-project/{projectId}
func (h *TaskHandler) HandleAddToProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return
	}
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	task, err := h.tasks.AddToProject(r.Context(), id, projectID)
	if err != nil {
		writeServiceError(w, "add task to project", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Message: "Task [" + strconv.FormatInt(id, 10) + "] added to project [" + strconv.FormatInt(projectID, 10) + "]",
		Task:    toTaskDTO(task),
	})
}
