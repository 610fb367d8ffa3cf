package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestioncoop/admin-usuarios/internal/api/handler"
	"github.com/gestioncoop/admin-usuarios/internal/api/middleware"
	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/ports"
	"github.com/gestioncoop/admin-usuarios/internal/token"
)

// Deps carries the constructed dependencies the router wires into handlers.
// Everything is built and owned by the caller so tests can swap any piece.
type Deps struct {
	Logger zerolog.Logger
	DB     *sql.DB
	Redis  *redis.Client
	Issuer *token.Issuer
	Auth   ports.AuthService
	Users  ports.UserService
	Audit  ports.AuditRepository

	// Metrics overrides the Prometheus registry for the request metrics and
	// the /metrics endpoint. Nil means the process-wide default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Metrics != nil {
		registerer = d.Metrics
		gatherer = d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "useradmin",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	auditHandler := handler.NewAuditHandler(d.Audit)
	boletaHandler := handler.NewBoletaHandler()

	authRequired := middleware.Auth(d.Issuer)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.GET("/auth/profile", authHandler.Profile, authRequired)

	users := apiGroup.Group("/users", authRequired)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update)
	users.PUT("/:id/change-password", userHandler.ChangePassword)

	apiGroup.GET("/audit", auditHandler.List, authRequired, adminOnly)

	// Boletas placeholder: authenticated but unimplemented.
	apiGroup.Any("/boletas", boletaHandler.NotImplemented, authRequired)
	apiGroup.Any("/boletas/*", boletaHandler.NotImplemented, authRequired)

	return e
}
