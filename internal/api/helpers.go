package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/samcharles93/aepdown/pkg/aep"
)

const HeaderRequestID = "X-Request-Id"

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// writeFailure renders err with the status its kind maps to.
func writeFailure(c *echo.Context, err error) error {
	status, errType := statusFor(err)
	code := aep.ErrorKind(err)
	if status == http.StatusRequestEntityTooLarge {
		code = "body_too_large"
	}
	return writeError(c, status, errType, err.Error(), "", code)
}

// requestID tags every response with an id, reusing one supplied by the client.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(HeaderRequestID, id)
		return next(c)
	}
}

// readBody reads at most limit bytes; a longer body is rejected rather than truncated.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, newInvalidRequest("request body is required")
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, newInvalidRequest("request body is required")
	}
	return data, nil
}

func versionNames(vs []aep.Version) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}
