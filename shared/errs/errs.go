// Package errs defines the domain error kinds shared by all services.
// Services return these sentinels (wrapped with context) and handlers map
// them to HTTP statuses, so database details never leak into responses.
package errs

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates a referenced entity id does not exist
var ErrNotFound = errors.New("not found")

// ErrValidation indicates a malformed or inconsistent payload
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the request collides with existing state
// (e.g. a duplicate vehicle plate)
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates missing or invalid credentials
// (e.g. a wrong or expired login code)
var ErrUnauthorized = errors.New("unauthorized")

// IsNotFound reports whether err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) ErrValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict reports whether err is (or wraps) ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized reports whether err is (or wraps) ErrUnauthorized
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// HTTPStatus maps a domain error to its HTTP status code.
// Unknown errors are treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	case IsConflict(err):
		return http.StatusConflict
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
