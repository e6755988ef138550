package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	deliverycontext "wanderly/internal/delivery/context"
	"wanderly/internal/delivery/http/response"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/usecase"
)

// ReviewHandler holds dependencies for review-related handlers.
type ReviewHandler struct {
	ResourceHandler[entity.Review]

	uc usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		ResourceHandler: newResourceHandler[entity.Review](uc, logger),
		uc:              uc,
	}
}

// ListReviews lists reviews, pre-scoped to the parent tour when reached
// through the nested route.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	var scope repository.Scope
	if tourID := c.Param("tourId"); tourID != "" {
		objectID, err := bson.ObjectIDFromHex(tourID)
		if err != nil {
			return domainerrors.ErrValidation.WrapMessage("invalid tour id")
		}
		scope = repository.Scope{"tour": objectID}
	}

	reviews, err := h.uc.GetAll(c.Request().Context(), c.QueryParams(), scope)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.List(c, http.StatusOK, reviews, len(reviews))
}

// CreateReview creates a review, defaulting the tour from the nested route
// and the author from the session.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	input := new(usecase.CreateReviewInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind review input")
	}

	if input.Tour == "" {
		input.Tour = c.Param("tourId")
	}
	if input.User == "" {
		if user := deliverycontext.GetCurrentUser(c); user != nil {
			input.User = user.ID.Hex()
		}
	}

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	review, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusCreated, review)
}
