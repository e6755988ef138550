package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	deliverycontext "wanderly/internal/delivery/context"
)

// RequestID propagates or generates the request identifier, making it
// available to handlers and echoing it back to the client.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.SetRequest(c.Request().WithContext(
			deliverycontext.WithRequestID(c.Request().Context(), requestID),
		))
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		return next(c)
	}
}
