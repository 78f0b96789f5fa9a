// Package faults defines the shared error taxonomy for domain operations.
// Domain packages declare named sentinels that wrap one of these kinds so
// callers can branch on errors.Is and handlers can map to HTTP status codes.
package faults

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every domain error wraps exactly one of these.
var (
	// ErrValidation indicates malformed input. Never retried automatically.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness or concurrency conflict. The caller
	// must re-fetch current state before retrying.
	ErrConflict = errors.New("conflict")

	// ErrIllegalState indicates an operation invalid for the entity's current
	// state, usually a stale client view.
	ErrIllegalState = errors.New("illegal state")

	// ErrExternal indicates a collaborator service failure or timeout.
	// Recoverable only by explicit retry of the same operation.
	ErrExternal = errors.New("external service failure")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Validationf returns a formatted error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// IllegalStatef returns a formatted error wrapping ErrIllegalState.
func IllegalStatef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrIllegalState)...)
}

// MapHTTPStatus maps taxonomy kinds to HTTP status codes.
// Unrecognized errors map to 500.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrIllegalState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrExternal):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
