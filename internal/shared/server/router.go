package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/dispatch"
	"career-backend/internal/documents"
	"career-backend/internal/session"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

// RouterDeps are the handlers and collaborators the router mounts.
type RouterDeps struct {
	Config    config.Config
	DB        *sql.DB
	Sessions  middleware.SessionVerifier
	Dispatch  *dispatch.Handler
	Session   *session.Handler
	Documents *documents.Handler
	Limiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Sessions != nil {
		r.Use(middleware.Session(deps.Sessions))
	}
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		GroupFor: middleware.DispatchGroupFor,
		Limiter:  deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			middleware.DispatchRateLimitGroup: {
				Rate:  deps.Config.DispatchRate,
				Burst: deps.Config.DispatchBurst,
			},
		},
	}))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", health(deps.DB))
	if deps.Dispatch != nil {
		deps.Dispatch.RegisterRoutes(api)
	}
	if deps.Session != nil {
		deps.Session.RegisterRoutes(api)
	}
	if deps.Documents != nil {
		deps.Documents.RegisterRoutes(api)
	}

	return r
}

func health(database *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database == nil {
			respond.OK(c, gin.H{"ok": true, "db": "memory"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(ctx); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unavailable", nil)
			return
		}
		respond.OK(c, gin.H{"ok": true, "db": "up"})
	}
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
