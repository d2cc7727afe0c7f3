package api

import (
	"errors"
	"net/http"

	"idea_backend/internal/feature/auth/domain"
)

// FromError translates an operation error into an HTTP status and a
// failure envelope. Unknown errors map to 500 with a non-specific message
// so internal detail never reaches the caller.
func FromError(err error) (int, Response) {
	var (
		validationErr   *domain.ValidationError
		conflictErr     *domain.ConflictError
		notFoundErr     *domain.NotFoundError
		unauthorizedErr *domain.UnauthorizedError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Fail(validationErr.Message)
	case errors.As(err, &conflictErr):
		return http.StatusBadRequest, Fail(conflictErr.Message)
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, Fail(notFoundErr.Message)
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized, Fail(unauthorizedErr.Message)
	default:
		return http.StatusInternalServerError, Fail("something went wrong")
	}
}
