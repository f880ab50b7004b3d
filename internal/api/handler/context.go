package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/middleware"
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A missing user
// means the route was mounted without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}
