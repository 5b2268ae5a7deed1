package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUsername is returned when a username is blank.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyPassword is returned when a password is blank.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's
	// practical input limit of 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")

	// ErrEmptyHashedPassword is returned when a stored user record is
	// missing its password hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

	// ErrEmptyTitle is returned when a task title is blank.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrDueDateNotFuture is returned when a task due date is not strictly
	// in the future.
	ErrDueDateNotFuture = errors.New("task due date must be in the future")

	// ErrEmptyOwner is returned when a task has no owner assigned.
	ErrEmptyOwner = errors.New("task owner cannot be empty")

	// ErrUnauthorized is returned when an operation is not permitted for
	// the caller.
	ErrUnauthorized = errors.New("unauthorized operation")
)
