// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"wanderly/internal/delivery/http/response"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/usecase"
)

// ResourceHandler serves the five CRUD endpoints for one resource. Concrete
// handlers embed it and add their resource-specific endpoints on top.
type ResourceHandler[T any] struct {
	uc     usecase.ResourceUsecase[T]
	logger *slog.Logger
}

func newResourceHandler[T any](uc usecase.ResourceUsecase[T], logger *slog.Logger) ResourceHandler[T] {
	return ResourceHandler[T]{uc: uc, logger: logger}
}

// CreateOne inserts the document carried by the request body.
func (h *ResourceHandler[T]) CreateOne(c echo.Context) error {
	doc := new(T)
	if err := c.Bind(doc); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind request body")
	}

	created, err := h.uc.CreateOne(c.Request().Context(), doc)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusCreated, created)
}

// GetOne fetches a single document by path identifier.
func (h *ResourceHandler[T]) GetOne(c echo.Context) error {
	doc, err := h.uc.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusOK, doc)
}

// GetAll lists documents shaped by the request's query parameters.
func (h *ResourceHandler[T]) GetAll(c echo.Context) error {
	docs, err := h.uc.GetAll(c.Request().Context(), c.QueryParams(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, docs, len(docs))
}

// UpdateOne applies the partial update carried by the request body.
func (h *ResourceHandler[T]) UpdateOne(c echo.Context) error {
	patch := map[string]any{}
	if err := c.Bind(&patch); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind request body")
	}
	delete(patch, "id")
	delete(patch, "_id")

	doc, err := h.uc.UpdateOne(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusOK, doc)
}

// DeleteOne removes a document by path identifier.
func (h *ResourceHandler[T]) DeleteOne(c echo.Context) error {
	if err := h.uc.DeleteOne(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Deleted(c)
}
