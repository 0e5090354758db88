package history

import (
	"errors"
	"net/http"
)

// Domain errors for history operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidMood  = errors.New("invalid mood label")
)

// MapHTTPStatus maps history domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMood):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
