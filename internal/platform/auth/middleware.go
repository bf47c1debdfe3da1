package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const EmailKey contextKey = "auth_email"

// AdminChecker reports whether the given email belongs to an admin user.
// Implemented by the user store; defined here to avoid importing the domain
// package from middleware.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Middleware validates the bearer token and attaches the verified email to
// the request context. Requests without a credential get 401 (AuthMissing),
// requests with a bad or expired one get 401 (AuthInvalid).
func Middleware(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			email, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := context.WithValue(c.Request().Context(), EmailKey, email)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin gates a route on the authenticated email having the admin
// role. Valid credential without the role gets 403.
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := EmailFromContext(c.Request().Context())
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			ok, err := checker.IsAdmin(c.Request().Context(), email)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
