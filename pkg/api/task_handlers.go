package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/middleware"
	"github.com/platinummonkey/menuboard/pkg/tasks"
)

// TaskHandlers handles the task list routes
type TaskHandlers struct {
	tasks tasks.Service
	gate  *middleware.AuthMiddleware
}

// NewTaskHandlers creates a new task handlers instance
func NewTaskHandlers(svc tasks.Service, gate *middleware.AuthMiddleware) *TaskHandlers {
	return &TaskHandlers{tasks: svc, gate: gate}
}

// RegisterRoutes registers task routes
func (h *TaskHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/tasks", h.gate.HandlerFunc(h.createTask)).Methods(http.MethodPost)
	router.Handle("/tasks", h.gate.HandlerFunc(h.listTasks)).Methods(http.MethodGet)
	router.Handle("/tasks/{id}", h.gate.HandlerFunc(h.updateTask)).Methods(http.MethodPut)
	router.Handle("/tasks/{task_id}", h.gate.HandlerFunc(h.deleteTask)).Methods(http.MethodDelete)
}

// createTask handles POST /tasks
func (h *TaskHandlers) createTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w, httputil.NonEmpty(req.Name, "name")) {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err, notFound("Task not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, task)
}

// listTasks handles GET /tasks
func (h *TaskHandlers) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	list, err := h.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// updateTask handles PUT /tasks/{id}
func (h *TaskHandlers) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	taskID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Status tasks.Status `json:"status"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	task, err := h.tasks.UpdateTaskStatus(r.Context(), userID, taskID, req.Status)
	if err != nil {
		writeError(w, r, err, notFound("Task not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, task)
}

// deleteTask handles DELETE /tasks/{task_id}
func (h *TaskHandlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	taskID, ok := httputil.ParsePathInt64OrError(w, r, "task_id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), userID, taskID); err != nil {
		writeError(w, r, err, notFound("Task not found"))
		return
	}
	httputil.WriteSuccessMessage(w, "Task deleted successfully")
}
