package handler

import (
	"net/http"

	"github.com/msomdec/task-tracker/internal/service"
)

// ProjectHandler serves the /projects API.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a project authored by the caller.
// POST /projects
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req projectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.projects.Create(r.Context(), req.Name, req.Description, identity.Email)
	if err != nil {
		writeServiceError(w, "create project", err)
		return
	}

	writeJSON(w, http.StatusCreated, projectResponse{
		Message: "Project [" + project.Name + "] created successfully",
		Project: toProjectDTO(project),
	})
}

// HandleList returns every project.
// GET /projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeServiceError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTOs(projects))
}

// HandleGet returns one project.
// GET /projects/{id}
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	project, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(project))
}

// HandleUpdate replaces a project's name and description.
// PATCH /projects/{id}
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	var req projectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.projects.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, "update project", err)
		return
	}

	writeJSON(w, http.StatusOK, projectResponse{
		Message: "Project [" + project.Name + "] updated successfully",
		Project: toProjectDTO(project),
	})
}

// HandleDelete deletes a project and detaches its tasks.
// DELETE /projects/{id}
// Response: {"message":"...","project":{...},"taskUpdated":N}
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project ID.")
		return
	}

	deleted, err := h.projects.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, "delete project", err)
		return
	}

	writeJSON(w, http.StatusOK, projectDeleteResponse{
		Message:     "Project [" + deleted.Project.Name + "] deleted successfully",
		Project:     toProjectDTO(&deleted.Project),
		TaskUpdated: deleted.TasksUpdated,
	})
}
