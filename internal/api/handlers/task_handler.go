package handlers

import (
	"net/http"

	"github.com/JibinB02/pehlahath/internal/api/middleware"
	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/usecase"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks is public: tasks with creator/volunteer identities resolved.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	views, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch tasks")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.CreateTaskRequest
	if !decodeValid(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req, caller)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) AssignVolunteer(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.AssignRequest
	if !decodeValid(w, r, &req) {
		return
	}

	task, err := h.taskService.JoinTask(r.Context(), req.TaskID, caller.ID)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Successfully volunteered for task",
		"task":    task,
	})
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.CompleteRequest
	if !decodeValid(w, r, &req) {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), req.TaskID, caller, req.ActualHours)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task marked as completed",
		"task":    task,
	})
}

func (h *TaskHandler) CancelTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req entity.CancelRequest
	if !decodeValid(w, r, &req) {
		return
	}

	task, err := h.taskService.CancelTask(r.Context(), req.TaskID, caller)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task cancelled",
		"task":    task,
	})
}

// GetStats is public: the recomputed fleet-wide snapshot.
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch volunteer statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
