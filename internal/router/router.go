package router

import (
	"net/http"

	"notigate/internal/common"
	"notigate/internal/config"
	"notigate/internal/domain/bulk"
	"notigate/internal/domain/notification"
	"notigate/internal/domain/sender"
	"notigate/internal/domain/template"
	"notigate/internal/metrics"
	"notigate/internal/middleware"

	"github.com/gin-gonic/gin"
)

// New creates and configures the Gin router with all middleware and routes.
func New(
	cfg *config.Config,
	m *metrics.Metrics,
	notificationHandler *notification.Handler,
	bulkHandler *bulk.Handler,
	templateHandler *template.Handler,
	senderHandler *sender.Handler,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Global middleware stack (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
	)
	r.Use(rateLimiter.Middleware())

	r.Use(gin.Logger())

	if m != nil {
		r.Use(m.Middleware())
	}

	// Public routes
	r.GET("/health", healthCheck)
	if m != nil && cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Protected API routes (API key required)
	protectedAPI := r.Group("/v2")
	protectedAPI.Use(middleware.Auth(cfg.Auth.APIKeys))
	{
		notificationHandler.RegisterRoutes(protectedAPI)
		bulkHandler.RegisterRoutes(protectedAPI)
		templateHandler.RegisterRoutes(protectedAPI)
		senderHandler.RegisterRoutes(protectedAPI)
	}

	return r
}

// healthCheck handles GET /health
func healthCheck(c *gin.Context) {
	common.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": "notigate",
	})
}
