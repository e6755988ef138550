package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"wanderly/internal/delivery/http/response"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/usecase"
)

// TourHandler holds dependencies for tour-related handlers.
type TourHandler struct {
	ResourceHandler[entity.Tour]

	uc usecase.TourUsecase
}

// NewTourHandler is the constructor for TourHandler, injected by Fx.
func NewTourHandler(uc usecase.TourUsecase, logger *slog.Logger) *TourHandler {
	return &TourHandler{
		ResourceHandler: newResourceHandler[entity.Tour](uc, logger),
		uc:              uc,
	}
}

// CreateTour validates the tour payload before handing it to the usecase.
func (h *TourHandler) CreateTour(c echo.Context) error {
	input := new(usecase.CreateTourInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind tour input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	tour, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusCreated, tour)
}

// AliasTopTours rewrites the query string to the canned "top 5 cheap"
// listing before the generic list handler runs.
func AliasTopTours(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.Request().URL.Query()
		query.Set("limit", "5")
		query.Set("sort", "-ratingsAverage,price")
		query.Set("fields", "name,price,ratingsAverage,summary,difficulty")
		c.Request().URL.RawQuery = query.Encode()

		return next(c)
	}
}

// Stats serves the per-difficulty aggregation.
func (h *TourHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusOK, stats)
}
