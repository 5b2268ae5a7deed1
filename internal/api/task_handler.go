package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pollinate/task-api/internal/api/shared"
	"github.com/pollinate/task-api/internal/platform/logger"
	"github.com/pollinate/task-api/internal/service"
)

// TaskHandler handles the task CRUD endpoints. Every operation is scoped to
// the identity bound by the authentication filter; no endpoint accepts a
// caller-supplied owner.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.UsernameFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskService.List(r.Context(), username)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list tasks",
			"owner", username, "error", err)
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// CreateTask handles POST /tasks. The owner is forced to the bound identity
// regardless of anything in the request body, and the response carries the
// full updated list for that owner.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.UsernameFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, dueDate, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.Create(r.Context(), username, req.Title, dueDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskListResponse(tasks))
}

// UpdateTask handles PUT /tasks/{id}. Only title and due date are mutable;
// a task that is absent or owned by someone else yields an identical 404.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.UsernameFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	req, dueDate, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.Update(r.Context(), username, id, req.Title, dueDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, NewTaskListResponse(tasks))
}

// DeleteTask handles DELETE /tasks/{id}. Same (id, owner) lookup contract as
// update; success is an empty 204.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.UsernameFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), username, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeTaskRequest decodes and validates a task payload, writing the 400
// response itself when the payload is unusable.
func (h *TaskHandler) decodeTaskRequest(
	w http.ResponseWriter,
	r *http.Request,
) (TaskRequest, *time.Time, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return req, nil, false
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due date format")
		return req, nil, false
	}

	return req, dueDate, true
}

// taskIDFromPath extracts the numeric task ID from the URL path.
func taskIDFromPath(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
