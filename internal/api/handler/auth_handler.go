package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandeep2351/linkedin-clone/internal/api/metrics"
	"github.com/sandeep2351/linkedin-clone/internal/core/domain"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	notifier    ports.WelcomeNotifier
	clientURL   string
}

// NewAuthHandler wires the auth endpoints. notifier receives the welcome
// message after a successful signup response has been written.
func NewAuthHandler(authService ports.AuthService, notifier ports.WelcomeNotifier, clientURL string) *AuthHandler {
	return &AuthHandler{authService: authService, notifier: notifier, clientURL: clientURL}
}

// Signup creates a new account and returns a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup form"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", domain.KindValidation.String()).Inc()
		return signupValidationError(err)
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", domain.KindOf(err).String()).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "success").Inc()

	if err := c.JSON(http.StatusCreated, tokenResponse{Message: "User registered successfully", Token: token}); err != nil {
		return err
	}

	// Post-commit: the response is already written, delivery is best effort.
	if h.notifier != nil {
		h.notifier.NotifyWelcome(ports.WelcomeMessage{
			UserID:     user.ID,
			Email:      user.Email,
			Name:       user.Name,
			ProfileURL: h.clientURL + "/profile/" + user.Username,
		})
	}
	return nil
}

// signupValidationError reports missing fields first. A form that is complete
// but carries a malformed email is ErrInvalidEmail.
func signupValidationError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) && !ve.Failed("required") && ve.Failed("email") {
		return domain.ErrInvalidEmail
	}
	return domain.ErrFieldsRequired
}

// Login exchanges a username and password for a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", domain.KindOf(err).String()).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	return c.JSON(http.StatusOK, tokenResponse{Message: "Logged in successfully", Token: token})
}

// Logout acknowledges a logout. Tokens are stateless, so the client discards its copy.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the authorized user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
