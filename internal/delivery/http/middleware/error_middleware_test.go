package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderly/config"
	domainerrors "wanderly/internal/domain/errors"
)

func renderError(t *testing.T, production bool, err error) (int, map[string]any) {
	t.Helper()

	cfg := &config.Config{}
	if production {
		cfg.Env.Env = "production"
	}
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestErrorMiddleware_AppError(t *testing.T) {
	code, body := renderError(t, true, domainerrors.ErrDocumentNotFound)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "no document found with that ID", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	wrapped := errors.Wrap(domainerrors.ErrForbidden, "failed to delete tour")

	code, body := renderError(t, true, wrapped)

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "you do not have permission to perform this action", body["message"])
}

func TestErrorMiddleware_ServerSideStatusKeyword(t *testing.T) {
	code, body := renderError(t, true, domainerrors.ErrMailDelivery)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", body["status"])
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, true, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "fail", body["status"])
}

func TestErrorMiddleware_UnknownErrorIsGenericInProduction(t *testing.T) {
	code, body := renderError(t, true, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "something went very wrong", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorMiddleware_UnknownErrorCarriesDetailInDevelopment(t *testing.T) {
	_, body := renderError(t, false, errors.New("boom"))

	assert.Equal(t, "boom", body["error"])
}
