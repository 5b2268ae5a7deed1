package mocks

import (
	"context"
	"time"

	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/service"
)

// MockTaskService implements service.TaskService for testing. By default it
// delegates to an in-memory MockTaskStore so handler tests get realistic
// list-after-mutation behavior without a database.
type MockTaskService struct {
	// Function fields for customizable behavior
	ListFn   func(ctx context.Context, owner string) ([]*domain.Task, error)
	CreateFn func(ctx context.Context, owner, title string, dueDate *time.Time) ([]*domain.Task, error)
	UpdateFn func(ctx context.Context, owner string, id int64, title string, dueDate *time.Time) ([]*domain.Task, error)
	DeleteFn func(ctx context.Context, owner string, id int64) error

	// Store backs the default implementation
	Store *MockTaskStore
}

// NewMockTaskService creates a mock service backed by a fresh MockTaskStore.
func NewMockTaskService() *MockTaskService {
	return &MockTaskService{Store: NewMockTaskStore()}
}

// Ensure MockTaskService implements service.TaskService
var _ service.TaskService = (*MockTaskService)(nil)

// List implements the service.TaskService interface
func (m *MockTaskService) List(ctx context.Context, owner string) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner)
	}
	return m.Store.ListByOwner(ctx, owner)
}

// Create implements the service.TaskService interface
func (m *MockTaskService) Create(
	ctx context.Context,
	owner, title string,
	dueDate *time.Time,
) ([]*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, owner, title, dueDate)
	}

	task, err := domain.NewTask(title, dueDate, owner)
	if err != nil {
		return nil, err
	}
	if err := m.Store.Create(ctx, task); err != nil {
		return nil, err
	}
	return m.Store.ListByOwner(ctx, owner)
}

// Update implements the service.TaskService interface
func (m *MockTaskService) Update(
	ctx context.Context,
	owner string,
	id int64,
	title string,
	dueDate *time.Time,
) ([]*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, owner, id, title, dueDate)
	}

	task, err := m.Store.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if err := task.Apply(title, dueDate); err != nil {
		return nil, err
	}
	if err := m.Store.Update(ctx, task); err != nil {
		return nil, err
	}
	return m.Store.ListByOwner(ctx, owner)
}

// Delete implements the service.TaskService interface
func (m *MockTaskService) Delete(ctx context.Context, owner string, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, id)
	}
	return m.Store.Delete(ctx, id, owner)
}
