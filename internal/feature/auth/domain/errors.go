// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Storage sentinels returned by the user repository.
// These errors represent persistence-level outcomes and are translated to
// the operation error types by the usecase layer.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates the unique index on email rejected a write.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateAlias indicates the unique index on alias rejected a write.
	ErrDuplicateAlias = errors.New("alias already exists")
)

// The four operation error kinds. Every failure that crosses an operation
// boundary is one of these; the transport layer maps them to HTTP statuses
// and the response envelope. Construct them with the helper functions so
// callers can match with errors.As.

// ValidationError reports malformed or missing input.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// Validation returns a new ValidationError with the given message.
func Validation(message string) error { return &ValidationError{Message: message} }

// ConflictError reports a uniqueness violation on email or alias.
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// Conflict returns a new ConflictError with the given message.
func Conflict(message string) error { return &ConflictError{Message: message} }

// NotFoundError reports that no matching user exists.
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// NotFound returns a new NotFoundError with the given message.
func NotFound(message string) error { return &NotFoundError{Message: message} }

// UnauthorizedError reports bad credentials or a failed token verification.
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// Unauthorized returns a new UnauthorizedError with the given message.
func Unauthorized(message string) error { return &UnauthorizedError{Message: message} }
