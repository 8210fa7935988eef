package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/welldanyogia/webrana-msgview/internal/api/handlers"
	"github.com/welldanyogia/webrana-msgview/internal/api/middleware"
	"github.com/welldanyogia/webrana-msgview/internal/metrics"
	"github.com/welldanyogia/webrana-msgview/internal/services"
	"gorm.io/gorm"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB      *gorm.DB
	Redis   *redis.Client // nil when the contact cache is disabled
	Views   services.ViewService
	Metrics *metrics.Metrics
	// Gatherer backs /metrics; nil serves the default registry
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	APIKey      string // empty disables authentication
	RateLimiter *middleware.IPRateLimiter
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		e.Use(middleware.Metrics(cfg.Metrics))
	}

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	viewHandler := handlers.NewViewHandler(cfg.Views)

	// Health and metrics routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimiter(cfg.RateLimiter, cfg.Logger))
	}
	api.Use(middleware.APIKeyAuth(cfg.APIKey, cfg.Logger))

	api.GET("/messages/:kind/:id", viewHandler.Get)
	api.GET("/threads/:id/messages", viewHandler.ListThread)

	return e
}
