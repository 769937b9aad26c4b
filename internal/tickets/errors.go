package tickets

import (
	"errors"
	"net/http"
)

// Domain errors for ticket operations.
var (
	ErrNotFound   = errors.New("ticket not found")
	ErrDuplicate  = errors.New("ticket already exists")
	ErrValidation = errors.New("invalid ticket")
	ErrInvalidID  = errors.New("invalid ticket id")
)

// MapHTTPStatus maps ticket domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
