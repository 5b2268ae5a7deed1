package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pollinate/task-api/internal/config"
	"github.com/pollinate/task-api/internal/platform/postgres"
	"github.com/pollinate/task-api/internal/service"
	"github.com/pollinate/task-api/internal/service/auth"
	"github.com/pollinate/task-api/internal/store"
)

// application holds the wired-up dependencies of the server. All wiring is
// explicit constructor calls; nothing is injected implicitly.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	taskService service.TaskService

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// newApplication connects to the database, runs pending migrations, and
// constructs every service the HTTP layer needs.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db)
	taskStore := postgres.NewPostgresTaskStore(db)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		taskStore:        taskStore,
		taskService:      service.NewTaskService(db, taskStore),
		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(0),
		passwordVerifier: auth.NewBcryptVerifier(),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
