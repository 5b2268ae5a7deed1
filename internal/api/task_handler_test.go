package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollinate/task-api/internal/api/shared"
	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/mocks"
)

// newTaskRouter mounts a TaskHandler on a chi router so URL parameters
// resolve the same way they do in production.
func newTaskRouter(t *testing.T) (chi.Router, *mocks.MockTaskService) {
	t.Helper()
	taskService := mocks.NewMockTaskService()
	handler := NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Get("/tasks", handler.ListTasks)
	r.Post("/tasks", handler.CreateTask)
	r.Put("/tasks/{id}", handler.UpdateTask)
	r.Delete("/tasks/{id}", handler.DeleteTask)
	return r, taskService
}

// doTaskRequest performs a request with the given identity bound to the
// context, mirroring what the authentication middleware does.
func doTaskRequest(
	t *testing.T,
	router chi.Router,
	username, method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req = req.WithContext(shared.WithUsername(req.Context(), username))
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeTaskList(t *testing.T, rr *httptest.ResponseRecorder) TaskListResponse {
	t.Helper()
	var resp TaskListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func seedServiceTask(t *testing.T, svc *mocks.MockTaskService, title, owner string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, nil, owner)
	require.NoError(t, err)
	require.NoError(t, svc.Store.Create(context.Background(), task))
	return task
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(dateLayout)
}

func TestListTasks(t *testing.T) {
	t.Run("returns only the caller's tasks", func(t *testing.T) {
		router, svc := newTaskRouter(t)
		seedServiceTask(t, svc, "buy milk", "alice")
		seedServiceTask(t, svc, "water plants", "alice")
		seedServiceTask(t, svc, "walk dog", "bob")

		rr := doTaskRequest(t, router, "alice", http.MethodGet, "/tasks", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeTaskList(t, rr)
		require.Len(t, resp.Tasks, 2)
		for _, task := range resp.Tasks {
			assert.Equal(t, "alice", task.Owner)
		}
	})

	t.Run("returns an empty list for a user with no tasks", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "alice", http.MethodGet, "/tasks", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"tasks":[]}`, rr.Body.String())
	})

	t.Run("returns 401 without a bound identity", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "", http.MethodGet, "/tasks", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("creates a task and returns 201 with the updated list", func(t *testing.T) {
		router, _ := newTaskRouter(t)
		due := futureDate()

		rr := doTaskRequest(t, router, "alice", http.MethodPost, "/tasks", TaskRequest{
			Title:   "buy milk",
			DueDate: &due,
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeTaskList(t, rr)
		require.Len(t, resp.Tasks, 1)
		assert.Equal(t, "buy milk", resp.Tasks[0].Title)
		assert.Equal(t, "alice", resp.Tasks[0].Owner)
		require.NotNil(t, resp.Tasks[0].DueDate)
		assert.Equal(t, due, *resp.Tasks[0].DueDate)
		assert.NotZero(t, resp.Tasks[0].ID)
	})

	t.Run("creates a task without a due date", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "alice", http.MethodPost, "/tasks", TaskRequest{
			Title: "buy milk",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeTaskList(t, rr)
		require.Len(t, resp.Tasks, 1)
		assert.Nil(t, resp.Tasks[0].DueDate)
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "alice", http.MethodPost, "/tasks", TaskRequest{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects a past due date", func(t *testing.T) {
		router, _ := newTaskRouter(t)
		past := time.Now().AddDate(0, 0, -1).Format(dateLayout)

		rr := doTaskRequest(t, router, "alice", http.MethodPost, "/tasks", TaskRequest{
			Title:   "buy milk",
			DueDate: &past,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Due date must be in the future")
	})

	t.Run("rejects a malformed due date", func(t *testing.T) {
		router, _ := newTaskRouter(t)
		bad := "06/01/2030"

		rr := doTaskRequest(t, router, "alice", http.MethodPost, "/tasks", TaskRequest{
			Title:   "buy milk",
			DueDate: &bad,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 401 without a bound identity", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "", http.MethodPost, "/tasks", TaskRequest{Title: "buy milk"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("updates an owned task and returns 202 with the updated list", func(t *testing.T) {
		router, svc := newTaskRouter(t)
		existing := seedServiceTask(t, svc, "buy milk", "alice")
		due := futureDate()

		rr := doTaskRequest(t, router, "alice", http.MethodPut,
			fmt.Sprintf("/tasks/%d", existing.ID), TaskRequest{
				Title:   "buy oat milk",
				DueDate: &due,
			})

		assert.Equal(t, http.StatusAccepted, rr.Code)
		resp := decodeTaskList(t, rr)
		require.Len(t, resp.Tasks, 1)
		assert.Equal(t, existing.ID, resp.Tasks[0].ID)
		assert.Equal(t, "buy oat milk", resp.Tasks[0].Title)
		require.NotNil(t, resp.Tasks[0].DueDate)
		assert.Equal(t, due, *resp.Tasks[0].DueDate)
	})

	t.Run("returns 404 for another user's task", func(t *testing.T) {
		router, svc := newTaskRouter(t)
		existing := seedServiceTask(t, svc, "walk dog", "bob")

		rr := doTaskRequest(t, router, "alice", http.MethodPut,
			fmt.Sprintf("/tasks/%d", existing.ID), TaskRequest{Title: "steal dog"})

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Task not found")

		unchanged, err := svc.Store.GetByIDAndOwner(context.Background(), existing.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, "walk dog", unchanged.Title)
	})

	t.Run("returns 404 for a missing task", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "alice", http.MethodPut, "/tasks/9999",
			TaskRequest{Title: "anything"})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "alice", http.MethodPut, "/tasks/abc",
			TaskRequest{Title: "anything"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid task ID")
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("deletes an owned task with an empty 204", func(t *testing.T) {
		router, svc := newTaskRouter(t)
		existing := seedServiceTask(t, svc, "buy milk", "alice")

		rr := doTaskRequest(t, router, "alice", http.MethodDelete,
			fmt.Sprintf("/tasks/%d", existing.ID), nil)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Empty(t, svc.Store.Tasks)
	})

	t.Run("returns 404 for another user's task", func(t *testing.T) {
		router, svc := newTaskRouter(t)
		existing := seedServiceTask(t, svc, "walk dog", "bob")

		rr := doTaskRequest(t, router, "alice", http.MethodDelete,
			fmt.Sprintf("/tasks/%d", existing.ID), nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Len(t, svc.Store.Tasks, 1, "the foreign task must survive")
	})

	t.Run("returns 401 without a bound identity", func(t *testing.T) {
		router, _ := newTaskRouter(t)

		rr := doTaskRequest(t, router, "", http.MethodDelete, "/tasks/1", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
