package httpx

import (
	"errors"
	"net/http"

	"github.com/firedesk/timecard/internal/shared"
)

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrNoValidated), errors.Is(err, shared.ErrInvalidPayPeriod),
		errors.Is(err, shared.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FailError sends the failure envelope with a status derived from err.
func FailError(w http.ResponseWriter, message string, err error) {
	Fail(w, StatusFor(err), message, err)
}
