package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status code and public message.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// signup
	case errors.Is(err, domain.ErrFieldsRequired):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email address"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, domain.ErrUsernameExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long", domain.MinPasswordLength)

	// login
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"

	// authorization gate
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusUnauthorized, "Unauthorized - No Token Provided"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized - Invalid Token"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Unauthorized - Token Expired"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusUnauthorized, "Unauthorized - User Not Found"

	// profile
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrInvalidTheme):
		return http.StatusBadRequest, "Invalid theme value"
	case errors.Is(err, domain.ErrInvalidUpdate):
		return http.StatusBadRequest, "Invalid profile update"

	// posts
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "Post not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "Comment not found"
	case errors.Is(err, domain.ErrPostEmpty):
		return http.StatusBadRequest, "Post content or image is required"
	case errors.Is(err, domain.ErrCommentEmpty):
		return http.StatusBadRequest, "Comment content is required"
	case errors.Is(err, domain.ErrNotPostAuthor):
		return http.StatusForbidden, "You are not authorized to delete this post"
	case errors.Is(err, domain.ErrCommentDeleteDenied):
		return http.StatusForbidden, "You are not authorized to delete this comment"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
