package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/metrics"
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

const (
	// ContextUserKey is the echo context key holding the authorized *domain.User.
	ContextUserKey = "user"

	// HeaderUserTheme carries the authorized user's theme when it is not the default.
	HeaderUserTheme = "X-User-Theme"
)

// Auth is the per-request authorization gate. It extracts the bearer token,
// verifies it, resolves the user and stores it in the context. Any failure
// returns the matching domain error and next is never called.
func Auth(tokens ports.TokenAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokens.ExtractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(err)
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				return reject(err)
			}

			user, err := tokens.Resolve(c.Request().Context(), userID)
			if err != nil {
				return reject(err)
			}

			c.Set(ContextUserKey, user)
			if user.Theme != domain.DefaultTheme {
				c.Response().Header().Set(HeaderUserTheme, string(user.Theme))
			}

			metrics.TokenChecksTotal.WithLabelValues("authorized").Inc()
			return next(c)
		}
	}
}

func reject(err error) error {
	metrics.TokenChecksTotal.WithLabelValues(checkResult(err)).Inc()
	return err
}

func checkResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoToken):
		return "no_token"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}

// UserFromContext returns the user stored by Auth, if any.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(ContextUserKey).(*domain.User)
	return u, ok && u != nil
}
