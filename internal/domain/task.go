package domain

import (
	"strings"
	"time"
)

// Task represents a single to-do item belonging to one user. The ID is
// assigned by the store on creation; Owner is always set server-side from the
// authenticated identity and is immutable, as is the ID.
type Task struct {
	ID      int64      `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
	Owner   string     `json:"owner"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewTask creates a new Task owned by the given username. The ID remains zero
// until the store assigns one. Returns an error if validation fails.
func NewTask(title string, dueDate *time.Time, owner string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:     title,
		DueDate:   dueDate,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data. The due date, when present,
// must be strictly in the future.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}

	if strings.TrimSpace(t.Owner) == "" {
		return ErrEmptyOwner
	}

	if t.DueDate != nil && !t.DueDate.After(time.Now()) {
		return ErrDueDateNotFuture
	}

	return nil
}

// Apply copies the mutable fields (title and due date) from the request onto
// the task. ID and Owner are never touched.
func (t *Task) Apply(title string, dueDate *time.Time) error {
	updated := *t
	updated.Title = title
	updated.DueDate = dueDate
	if err := updated.Validate(); err != nil {
		return err
	}

	t.Title = title
	t.DueDate = dueDate
	t.UpdatedAt = time.Now().UTC()
	return nil
}
