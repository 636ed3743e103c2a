package handler

import (
	"net/http"

	"github.com/msomdec/task-tracker/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, projects *service.ProjectService, tasks *service.TaskService) {
	authHandler := NewAuthHandler(auth)
	projectHandler := NewProjectHandler(projects)
	taskHandler := NewTaskHandler(tasks)

	protect := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /users", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)

	mux.Handle("POST /projects", protect(projectHandler.HandleCreate))
	mux.Handle("GET /projects", protect(projectHandler.HandleList))
	mux.Handle("GET /projects/{id}", protect(projectHandler.HandleGet))
	mux.Handle("PATCH /projects/{id}", protect(projectHandler.HandleUpdate))
	mux.Handle("DELETE /projects/{id}", protect(projectHandler.HandleDelete))

	mux.Handle("POST /tasks", protect(taskHandler.HandleCreate))
	mux.Handle("GET /tasks", protect(taskHandler.HandleList))
	mux.Handle("GET /tasks/{id}", protect(taskHandler.HandleGet))
	mux.Handle("PATCH /tasks/{id}", protect(taskHandler.HandleUpdate))
	mux.Handle("DELETE /tasks/{id}", protect(taskHandler.HandleDelete))
	mux.Handle("PATCH /tasks/{id}/promote", protect(taskHandler.HandlePromote))
	mux.Handle("PATCH /tasks/{id}/add-to-project/{projectId}", protect(taskHandler.HandleAddToProject))
}
