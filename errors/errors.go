package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
)

// Root kinds. Every error returned by services wraps exactly one of them.
var (
	ErrAuth        = fmt.Errorf("authentication failed")
	ErrForbidden   = fmt.Errorf("forbidden")
	ErrValidation  = fmt.Errorf("validation failed")
	ErrNotFound    = fmt.Errorf("not found")
	ErrPersistence = fmt.Errorf("persistence failure")
	ErrIO          = fmt.Errorf("io failure")
)

var (
	ErrMissingToken       = fmt.Errorf("%w: token is required", ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrAuth)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuth)
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	ErrMissingField      = fmt.Errorf("%w: missing field", ErrValidation)
	ErrNotEnoughMembers  = fmt.Errorf("%w: a group chat needs at least two users", ErrValidation)
	ErrUserAlreadyExists = fmt.Errorf("%w: username already exists", ErrValidation)
	ErrInvalidPassword   = fmt.Errorf("%w: password does not meet requirements", ErrValidation)

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrChatNotFound = fmt.Errorf("%w: chat", ErrNotFound)

	ErrSessionClosed = fmt.Errorf("session closed")
	ErrSlowConsumer  = fmt.Errorf("session send buffer full")
	ErrWorkerPanic   = fmt.Errorf("worker panic")
)

// Is and As forward to the standard library so callers importing this
// package don't need a second errors import.
func Is(err, target error) bool { return goerrors.Is(err, target) }

func As(err error, target any) bool { return goerrors.As(err, target) }

// Persistence wraps a storage failure unless it already carries a domain kind.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.Is(err, ErrNotFound) || goerrors.Is(err, ErrValidation) || goerrors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// MapToHTTPStatus converts a service error into the status code sent to HTTP clients.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerrors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case goerrors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case goerrors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case goerrors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
