package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "bottling-backend/internal/auth"
	"bottling-backend/internal/linerates"
	"bottling-backend/internal/liveedit"
	"bottling-backend/internal/products"
	"bottling-backend/internal/schedule"
	"bottling-backend/internal/shared/config"
	"bottling-backend/internal/shared/metrics"
	"bottling-backend/internal/shared/server/middleware"
	"bottling-backend/internal/shared/server/respond"
)

const liveEditRateGroup = "LIVE_EDIT"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	ScheduleHandler *schedule.Handler
	LiveEditHandler *liveedit.Handler
	ProductHandler  *products.Handler
	LineRateHandler *linerates.Handler
	GoogleAuth      *googleauth.GoogleService
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
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				liveEditRateGroup: {Rate: 10, Burst: 30},
			},
			GroupFor: liveEditMutations,
		}),
	)

	r.GET("/metrics", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(metrics.Render()))
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.RegisterRoutes(api)
	}
	if deps.LiveEditHandler != nil {
		deps.LiveEditHandler.RegisterRoutes(api)
	}
	if deps.ProductHandler != nil {
		deps.ProductHandler.RegisterRoutes(api)
	}
	if deps.LineRateHandler != nil {
		deps.LineRateHandler.RegisterRoutes(api)
	}

	return r
}

// liveEditMutations throttles writes against live sessions; reads stay unlimited.
func liveEditMutations(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return ""
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/v1/live-sessions") {
		return liveEditRateGroup
	}
	return ""
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
