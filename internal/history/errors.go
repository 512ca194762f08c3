package history

import (
	"errors"
	"net/http"
)

// Domain errors for batch history.
var (
	ErrNotFound  = errors.New("batch not found")
	ErrDuplicate = errors.New("batch already recorded")
)

// MapHTTPStatus maps history errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
