package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/samcharles93/aepdown/pkg/aep"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrBodyTooLarge   = errors.New("request body too large")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(format string, args ...any) error {
	return invalidRequestError{msg: fmt.Sprintf(format, args...)}
}

// statusFor maps an error to the HTTP status and error type reported to clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "invalid_request_error"
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, aep.ErrUnsupportedVersion),
		errors.Is(err, aep.ErrInvalidTarget):
		return http.StatusBadRequest, "invalid_request_error"
	case aep.ErrorKind(err) != "":
		return http.StatusUnprocessableEntity, "conversion_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
