package api

import (
	"time"

	"github.com/pollinate/task-api/internal/domain"
)

// Common request/response structures

// dateLayout is the wire format for task due dates.
const dateLayout = "2006-01-02"

// AuthRequest defines the payload for the registration and login endpoints.
type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse defines the response body for authentication endpoints.
type AuthResponse struct {
	Response string `json:"response"`
}

// TaskRequest defines the payload for task create and update endpoints.
// DueDate is an optional ISO date (YYYY-MM-DD). Any client-supplied owner
// field is deliberately absent: ownership always comes from the bound
// identity.
type TaskRequest struct {
	Title   string  `json:"title"   validate:"required"`
	DueDate *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// TaskView is the wire representation of a single task.
type TaskView struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	DueDate *string `json:"dueDate,omitempty"`
	Owner   string  `json:"owner"`
}

// TaskListResponse wraps the full task list returned by every task endpoint.
type TaskListResponse struct {
	Tasks []TaskView `json:"tasks"`
}

// NewTaskListResponse maps domain tasks to their wire representation.
func NewTaskListResponse(tasks []*domain.Task) TaskListResponse {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			ID:    t.ID,
			Title: t.Title,
			Owner: t.Owner,
		}
		if t.DueDate != nil {
			d := t.DueDate.Format(dateLayout)
			view.DueDate = &d
		}
		views = append(views, view)
	}
	return TaskListResponse{Tasks: views}
}

// parseDueDate converts an optional wire date into a time value.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
