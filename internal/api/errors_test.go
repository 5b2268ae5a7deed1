package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pollinate/task-api/internal/domain"
	"github.com/pollinate/task-api/internal/service/auth"
	"github.com/pollinate/task-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped task not found", fmt.Errorf("update: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty title", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"past due date", domain.ErrDueDateNotFuture, http.StatusBadRequest},
		{"empty username", domain.ErrEmptyUsername, http.StatusBadRequest},
		{"password too long", domain.ErrPasswordTooLong, http.StatusBadRequest},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"username exists", store.ErrUsernameExists, "Username is already taken"},
		{"empty title", domain.ErrEmptyTitle, "Task title is required"},
		{"past due date", domain.ErrDueDateNotFuture, "Due date must be in the future"},
		{"unknown error", errors.New("pq: syntax error at position 12"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	internal := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	msg := GetSafeErrorMessage(fmt.Errorf("list tasks: %w", internal))
	assert.NotContains(t, msg, "10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", msg)
}
