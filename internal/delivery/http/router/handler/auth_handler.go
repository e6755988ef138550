package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"wanderly/config"
	deliverycontext "wanderly/internal/delivery/context"
	"wanderly/internal/delivery/http/middleware"
	"wanderly/internal/delivery/http/response"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/service"
	"wanderly/internal/usecase"
)

// AuthHandler holds dependencies for the authentication handlers.
type AuthHandler struct {
	auth   usecase.AuthUsecase
	tokens service.TokenService
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	auth usecase.AuthUsecase,
	tokens service.TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// Signup registers a new account and logs it in.
func (h *AuthHandler) Signup(c echo.Context) error {
	input := new(usecase.SignupInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.auth.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, out.Token)

	return response.Auth(c, http.StatusCreated, out.Token, out.User)
}

// Login verifies credentials and issues a session.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.auth.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, out.Token)

	return response.Auth(c, http.StatusOK, out.Token, out.User)
}

// Logout discards the session cookie. The bearer token itself stays valid
// until it expires; clients must also drop their stored copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})

	return response.Message(c, http.StatusOK, "logged out")
}

// ForgotPassword mails a reset token to the account holder.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	input := new(usecase.ForgotPasswordInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind forgot password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	resetURLBase := c.Scheme() + "://" + c.Request().Host + "/api/v1/users/resetPassword"
	if err := h.auth.ForgotPassword(c.Request().Context(), input, resetURLBase); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "token sent to email")
}

// ResetPassword redeems the mailed token and sets the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	input := new(usecase.ResetPasswordInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind reset password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, out.Token)

	return response.Auth(c, http.StatusOK, out.Token, out.User)
}

// UpdatePassword changes the calling user's password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return errors.WithStack(domainerrors.ErrNotLoggedIn)
	}

	input := new(usecase.UpdatePasswordInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidation.WrapMessage("failed to bind update password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.auth.UpdatePassword(c.Request().Context(), user.ID.Hex(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, out.Token)

	return response.Auth(c, http.StatusOK, out.Token, out.User)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
