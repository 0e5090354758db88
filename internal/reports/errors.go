package reports

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/storage"
)

// Domain errors for report operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidDate  = errors.New("date must be formatted YYYY-MM-DD")
	ErrNotArchived  = errors.New("no archived report for that date")
)

// MapHTTPStatus maps report domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNotArchived):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrDisabled):
		return http.StatusServiceUnavailable
	}
	return storage.MapHTTPStatus(err)
}
