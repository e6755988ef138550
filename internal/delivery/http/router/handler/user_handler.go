package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "wanderly/internal/delivery/context"
	"wanderly/internal/delivery/http/response"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/usecase"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	ResourceHandler[entity.User]

	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		ResourceHandler: newResourceHandler[entity.User](uc, logger),
		uc:              uc,
	}
}

// GetMe serves the calling user's own profile.
func (h *UserHandler) GetMe(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return errors.WithStack(domainerrors.ErrNotLoggedIn)
	}

	profile, err := h.uc.GetOne(c.Request().Context(), user.ID.Hex())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusOK, profile)
}

// UpdateMe patches the calling user's own profile. Password fields in the
// body are rejected outright rather than silently ignored.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return errors.WithStack(domainerrors.ErrNotLoggedIn)
	}

	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind request body")
	}
	for _, field := range []string{"password", "passwordConfirm", "passwordCurrent"} {
		if _, ok := body[field]; ok {
			return errors.WithStack(domainerrors.ErrPasswordRoute)
		}
	}

	input := &usecase.UpdateMeInput{}
	if name, ok := body["name"].(string); ok {
		input.Name = name
	}
	if email, ok := body["email"].(string); ok {
		input.Email = email
	}
	if photo, ok := body["photo"].(string); ok {
		input.Photo = photo
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.UpdateMe(c.Request().Context(), user.ID.Hex(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Data(c, http.StatusOK, updated)
}

// DeleteMe deactivates the calling user's account.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return errors.WithStack(domainerrors.ErrNotLoggedIn)
	}

	if err := h.uc.DeleteMe(c.Request().Context(), user.ID.Hex()); err != nil {
		return errors.WithStack(err)
	}

	return response.Deleted(c)
}
