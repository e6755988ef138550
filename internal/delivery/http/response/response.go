// Package response renders the unified API envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the unified API response structure. Every success carries
// status "success"; failures carry "fail" (4xx) or "error" (5xx).
type Envelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	// Detail carries the underlying error text outside production.
	Detail string `json:"error,omitempty"`
}

// Data renders a single document under data.data.
func Data(c echo.Context, statusCode int, doc any) error {
	return c.JSON(statusCode, Envelope{
		Status: "success",
		Data:   map[string]any{"data": doc},
	})
}

// List renders a collection under data.data with its result count.
func List(c echo.Context, statusCode int, docs any, results int) error {
	return c.JSON(statusCode, Envelope{
		Status:  "success",
		Results: &results,
		Data:    map[string]any{"data": docs},
	})
}

// Auth renders a session token together with the user it belongs to.
func Auth(c echo.Context, statusCode int, token string, user any) error {
	return c.JSON(statusCode, Envelope{
		Status: "success",
		Token:  token,
		Data:   map[string]any{"user": user},
	})
}

// Message renders a success with no document payload.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{
		Status:  "success",
		Message: message,
	})
}

// Deleted renders the empty success used after a removal.
func Deleted(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
