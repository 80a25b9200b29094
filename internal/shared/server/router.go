package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/forms"
	"resume-generator/internal/resumes"
	"resume-generator/internal/services/health"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
)

// RouterDeps holds everything the router mounts.
type RouterDeps struct {
	Config         config.Config
	Metrics        *metrics.Recorder
	Health         *health.Service
	FormsHandler   *forms.Handler
	ResumesHandler *resumes.Handler
	// Limiter is shared across routers in tests; nil creates a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	rules := map[string]middleware.RateLimitRule{}
	if deps.Config.GenerateRatePerMinute > 0 {
		rules[middleware.GenerateGroup] = middleware.PerMinute(deps.Config.GenerateRatePerMinute, deps.Config.GenerateBurst)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		deps.Metrics.Middleware(),
		middleware.CORS(deps.Config.AllowedOrigins()),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: middleware.GenerateGroupFor,
			Limiter:  deps.Limiter,
			Rules:    rules,
		}),
	)

	r.GET("/metrics", deps.Metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.FormsHandler != nil {
		deps.FormsHandler.RegisterRoutes(r)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
