package store

import (
	"context"
	"database/sql"

	"github.com/pollinate/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every lookup is
// scoped by owner; there is intentionally no way to fetch a task by ID alone.
type TaskStore interface {
	// ListByOwner returns all tasks owned by the given username, ordered by
	// due date then ID. Returns an empty slice when the user has no tasks.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)

	// GetByIDAndOwner retrieves the task with the given ID if and only if it
	// is owned by the given username. Returns ErrTaskNotFound both when the
	// task does not exist and when it belongs to someone else.
	GetByIDAndOwner(ctx context.Context, id int64, owner string) (*domain.Task, error)

	// Create persists a new task and fills in its store-assigned ID.
	Create(ctx context.Context, task *domain.Task) error

	// Update persists the mutable fields (title, due date) of an existing
	// task, matching on (ID, Owner). Returns ErrTaskNotFound if no such row.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by the given username.
	// Returns ErrTaskNotFound if no such row.
	Delete(ctx context.Context, id int64, owner string) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
