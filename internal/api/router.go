package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sandeep2351/linkedin-clone/docs"
	"github.com/sandeep2351/linkedin-clone/internal/api/handler"
	"github.com/sandeep2351/linkedin-clone/internal/api/middleware"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
)

// Deps carries everything the router needs. Services are built by the caller.
type Deps struct {
	Auth     ports.AuthService
	Tokens   ports.TokenAuthority
	Users    ports.UserService
	Posts    ports.PostService
	Notifier ports.WelcomeNotifier

	// Checks are run by GET /health/ready, keyed by dependency name.
	Checks map[string]handler.Check

	BasePath  string
	ClientURL string
	Log       zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil uses the
	// Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Notifier, deps.ClientURL)
	userHandler := handler.NewUserHandler(deps.Users)
	postHandler := handler.NewPostHandler(deps.Posts)
	protect := middleware.Auth(deps.Tokens)

	base := e.Group(deps.BasePath)

	// --- Auth routes ---
	auth := base.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, protect)

	// --- User routes (all authorized) ---
	users := base.Group("/users", protect)
	users.GET("/suggestions", userHandler.Suggestions)
	users.GET("/theme", userHandler.GetTheme)
	users.PUT("/theme", userHandler.UpdateTheme)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/:username", userHandler.PublicProfile)

	// --- Post routes (all authorized) ---
	posts := base.Group("/posts", protect)
	posts.GET("", postHandler.Feed)
	posts.GET("/", postHandler.Feed)
	posts.POST("/create", postHandler.Create)
	posts.DELETE("/delete/:id", postHandler.Delete)
	posts.GET("/:id", postHandler.Get)
	posts.POST("/:id/comment", postHandler.Comment)
	posts.POST("/:id/like", postHandler.Like)
	posts.DELETE("/:id/comment/:commentId", postHandler.DeleteComment)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
