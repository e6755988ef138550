package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "wanderly/internal/delivery/context"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/usecase"
)

// SessionCookieName is the cookie the login handler sets alongside the
// response body token.
const SessionCookieName = "jwt"

// AuthMiddleware guards routes behind a valid session and, optionally, a
// role requirement.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Protect validates the presented session token and stores the authenticated
// user on the request context. The token comes from the Authorization header
// or, failing that, the session cookie.
func (m *AuthMiddleware) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)

		user, err := m.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// RequireRole is a middleware factory restricting a route to the given
// roles. It must be used after Protect.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := deliverycontext.GetCurrentUser(c)
			if user == nil {
				return errors.WithStack(domainerrors.ErrNotLoggedIn)
			}

			if !allowed.Contains(user.Role) {
				return errors.WithStack(domainerrors.ErrForbidden)
			}

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if token, found := strings.CutPrefix(authHeader, "Bearer "); found && token != "" {
		return token
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
