// Package service contains the application services orchestrating store
// operations within transaction boundaries.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/platform/logger"
	"github.com/pollinate/task-api/internal/store"
)

// TaskService defines the task operations, all scoped to an owner username
// established by the authentication filter. Mutations return the owner's full
// updated task list, refetched within the same transaction as the mutation.
type TaskService interface {
	// List returns all tasks owned by the given username.
	List(ctx context.Context, owner string) ([]*domain.Task, error)

	// Create validates and persists a new task for the owner and returns the
	// updated list.
	Create(ctx context.Context, owner, title string, dueDate *time.Time) ([]*domain.Task, error)

	// Update mutates title and due date of the owner's task with the given
	// ID and returns the updated list. Returns store.ErrTaskNotFound when the
	// task is absent or owned by someone else.
	Update(ctx context.Context, owner string, id int64, title string, dueDate *time.Time) ([]*domain.Task, error)

	// Delete removes the owner's task with the given ID. Same not-found
	// contract as Update.
	Delete(ctx context.Context, owner string, id int64) error
}

// taskService is the production TaskService backed by a SQL database.
type taskService struct {
	db        *sql.DB
	taskStore store.TaskStore
}

// NewTaskService creates a TaskService running each mutation plus its
// list-refetch in a single transaction on the given database.
func NewTaskService(db *sql.DB, taskStore store.TaskStore) TaskService {
	return &taskService{
		db:        db,
		taskStore: taskStore,
	}
}

// Ensure taskService implements TaskService interface
var _ TaskService = (*taskService)(nil)

// List implements TaskService.List
func (s *taskService) List(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("retrieving tasks", "owner", owner)

	return s.taskStore.ListByOwner(ctx, owner)
}

// Create implements TaskService.Create
func (s *taskService) Create(
	ctx context.Context,
	owner, title string,
	dueDate *time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)
	log.Info("creating task", "owner", owner)

	task, err := domain.NewTask(title, dueDate, owner)
	if err != nil {
		return nil, err
	}

	return s.mutateAndList(ctx, owner, func(ctx context.Context, ts store.TaskStore) error {
		return ts.Create(ctx, task)
	})
}

// Update implements TaskService.Update
func (s *taskService) Update(
	ctx context.Context,
	owner string,
	id int64,
	title string,
	dueDate *time.Time,
) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)
	log.Info("updating task", "owner", owner, "task_id", id)

	return s.mutateAndList(ctx, owner, func(ctx context.Context, ts store.TaskStore) error {
		task, err := ts.GetByIDAndOwner(ctx, id, owner)
		if err != nil {
			return err
		}
		if err := task.Apply(title, dueDate); err != nil {
			return err
		}
		return ts.Update(ctx, task)
	})
}

// Delete implements TaskService.Delete
func (s *taskService) Delete(ctx context.Context, owner string, id int64) error {
	log := logger.FromContext(ctx)
	log.Info("deleting task", "owner", owner, "task_id", id)

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id, owner)
	})
}

// mutateAndList runs the given mutation followed by a list refetch for the
// owner inside one transaction, so the returned list always reflects the
// committed mutation.
func (s *taskService) mutateAndList(
	ctx context.Context,
	owner string,
	mutate func(ctx context.Context, ts store.TaskStore) error,
) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		ts := s.taskStore.WithTx(tx)
		if err := mutate(ctx, ts); err != nil {
			return err
		}
		var listErr error
		tasks, listErr = ts.ListByOwner(ctx, owner)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
