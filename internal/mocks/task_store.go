package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in a map and assigns sequential IDs, mirroring
// the owner-scoping contract of the real store.
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListByOwnerFn     func(ctx context.Context, owner string) ([]*domain.Task, error)
	GetByIDAndOwnerFn func(ctx context.Context, id int64, owner string) (*domain.Task, error)
	CreateFn          func(ctx context.Context, task *domain.Task) error
	UpdateFn          func(ctx context.Context, task *domain.Task) error
	DeleteFn          func(ctx context.Context, id int64, owner string) error

	// Data for default implementation
	Tasks  map[int64]*domain.Task
	NextID int64

	ListError   error
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:  make(map[int64]*domain.Task),
		NextID: 1,
	}
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// ListByOwner implements the TaskStore interface
func (m *MockTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, owner)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.Owner == owner {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// GetByIDAndOwner implements the TaskStore interface
func (m *MockTaskStore) GetByIDAndOwner(
	ctx context.Context,
	id int64,
	owner string,
) (*domain.Task, error) {
	if m.GetByIDAndOwnerFn != nil {
		return m.GetByIDAndOwnerFn(ctx, id, owner)
	}

	task, exists := m.Tasks[id]
	if !exists || task.Owner != owner {
		return nil, store.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	task.ID = m.NextID
	m.NextID++
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	existing, exists := m.Tasks[task.ID]
	if !exists || existing.Owner != task.Owner {
		return store.ErrTaskNotFound
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64, owner string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, owner)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	existing, exists := m.Tasks[id]
	if !exists || existing.Owner != owner {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface; the mock has no transactions so
// it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
