package consultations

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/moodai/internal/payment"
)

// Domain errors for consultation operations.
var (
	ErrUnavailable        = errors.New("payments are not available")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrDuplicate          = errors.New("consultation already booked for this payment")
	ErrUserNotFound       = errors.New("user not found")
)

// MapHTTPStatus maps consultation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrVerificationFailed), errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}

	var apiErr *payment.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
