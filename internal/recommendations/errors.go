package recommendations

import (
	"errors"
	"net/http"
)

// Domain errors for recommendation operations.
var (
	ErrNotFound  = errors.New("recommendation not found")
	ErrDuplicate = errors.New("recommendation already exists")
	ErrInvalid   = errors.New("invalid recommendation")
)

// MapHTTPStatus maps recommendation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
