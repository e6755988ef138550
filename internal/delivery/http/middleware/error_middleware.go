// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"wanderly/config"
	"wanderly/internal/delivery/http/response"
	domainerrors "wanderly/internal/domain/errors"
)

// ErrorMiddleware translates errors into the response envelope. It is the
// single point where the error taxonomy meets the wire.
type ErrorMiddleware struct {
	logger     *slog.Logger
	production bool
}

// NewErrorMiddleware creates a new error handling middleware.
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:     logger,
		production: cfg.IsProduction(),
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.render(c, appErr.HTTPCode(), appErr.Status(), appErr.Message(), err)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		status := "fail"
		if httpErr.Code >= http.StatusInternalServerError {
			status = "error"
		}
		m.render(c, httpErr.Code, status, message, err)

		return
	}

	m.logger.Error("unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	m.render(c, http.StatusInternalServerError, "error", domainerrors.ErrInternal.Message(), err)
}

func (m *ErrorMiddleware) render(c echo.Context, code int, status, message string, err error) {
	envelope := response.Envelope{
		Status:  status,
		Message: message,
	}
	if !m.production {
		envelope.Detail = err.Error()
	}

	if renderErr := c.JSON(code, envelope); renderErr != nil {
		m.logger.Error("failed to render error response", "error", renderErr)
	}
}
