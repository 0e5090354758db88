package mood

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput indicates empty or whitespace-only text.
	ErrInvalidInput = errors.New("text must not be empty")
	// ErrClassificationUnavailable indicates the sentiment scorer could not produce a score.
	ErrClassificationUnavailable = errors.New("mood classification unavailable")
	// ErrUnknownLabel indicates a string that is not one of the five mood labels.
	ErrUnknownLabel = errors.New("unknown mood label")
)

// MapHTTPStatus maps mood errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownLabel):
		return http.StatusBadRequest
	case errors.Is(err, ErrClassificationUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
