package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/platform/logger"
	"github.com/pollinate/task-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend. Every query is scoped by the
// owner column; ownership is enforced in SQL, not in application code.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(
	ctx context.Context,
	owner string,
) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, title, due_date, owner, created_at, updated_at
		FROM tasks
		WHERE owner = $1
		ORDER BY due_date NULLS LAST, id
	`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		log.Error("failed to query tasks", "owner", owner, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "owner", owner, "error", err)
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// GetByIDAndOwner implements store.TaskStore.GetByIDAndOwner
func (s *PostgresTaskStore) GetByIDAndOwner(
	ctx context.Context,
	id int64,
	owner string,
) (*domain.Task, error) {
	query := `
		SELECT id, title, due_date, owner, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		if err == sql.ErrNoRows {
			// Absent and foreign-owned are indistinguishable on purpose.
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (title, due_date, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullableTime(task.DueDate),
		task.Owner,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to insert task", "owner", task.Owner, "error", err)
		return MapError(err)
	}

	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE tasks
		SET title = $1, due_date = $2, updated_at = $3
		WHERE id = $4 AND owner = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullableTime(task.DueDate),
		time.Now().UTC(),
		task.ID,
		task.Owner,
	)
	if err != nil {
		log.Error("failed to update task", "task_id", task.ID, "owner", task.Owner, "error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64, owner string) error {
	log := logger.FromContext(ctx)

	query := `DELETE FROM tasks WHERE id = $1 AND owner = $2`

	result, err := s.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "owner", owner, "error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&dueDate,
		&task.Owner,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		task.DueDate = &d
	}
	return &task, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
