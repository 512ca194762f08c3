package conversion

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/image-forge/internal/formats"
	"github.com/JaimeStill/image-forge/internal/storage"
)

// Conversion errors. Every per-file error wraps exactly one of these; codec
// messages are kept after the sentinel so reports show the original cause.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failed")
	ErrResize            = errors.New("resize failed")
	ErrEncode            = errors.New("encode failed")
	ErrWrite             = storage.ErrWrite
	ErrInvalidOption     = errors.New("invalid option")
	ErrInputTooLarge     = errors.New("input too large")
	ErrNothingSelected   = errors.New("no readable images selected")
	ErrOutputCollision   = errors.New("output collides with another source")
)

// MapHTTPStatus maps conversion errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidOption), errors.Is(err, formats.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrNothingSelected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
