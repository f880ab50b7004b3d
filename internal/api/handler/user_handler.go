package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

// UserHandler serves profile and preference endpoints. Every route sits behind Auth.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Suggestions handles GET /users/suggestions.
//
// @Summary      Suggested connections
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   suggestionResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /users/suggestions [get]
func (h *UserHandler) Suggestions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	users, err := h.service.Suggestions(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSuggestionsResponse(users))
}

// PublicProfile handles GET /users/:username.
//
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      401       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /users/{username} [get]
func (h *UserHandler) PublicProfile(c echo.Context) error {
	user, err := h.service.GetPublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /users/profile.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := toProfileUpdate(req)
	if update.Empty() {
		return c.JSON(http.StatusOK, toUserResponse(user))
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), user.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// GetTheme handles GET /users/theme.
//
// @Summary      Theme preference
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/theme [get]
func (h *UserHandler) GetTheme(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	theme, err := h.service.GetTheme(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: string(theme)})
}

// UpdateTheme handles PUT /users/theme.
//
// @Summary      Update theme preference
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateThemeRequest  true  "light or dark"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/theme [put]
func (h *UserHandler) UpdateTheme(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateThemeRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidTheme
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidTheme
	}

	theme, err := h.service.UpdateTheme(c.Request().Context(), user.ID, req.Theme)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Message: "Theme updated successfully", Theme: string(theme)})
}
