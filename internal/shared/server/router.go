package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"cloud-storage-bot/internal/files"
	"cloud-storage-bot/internal/relay"
	"cloud-storage-bot/internal/services/health"
	"cloud-storage-bot/internal/shared/config"
	"cloud-storage-bot/internal/shared/metrics"
	"cloud-storage-bot/internal/shared/server/middleware"
	"cloud-storage-bot/internal/shared/server/respond"
)

const indexFallback = "Cloud Storage Bot is running!"

// RouterDeps are the handlers the HTTP surface is assembled from.
type RouterDeps struct {
	Files       *files.Handler
	Relay       *relay.Handler
	Health      *health.Service
	SendLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/", index(cfg.WebAppDir))
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, deps.Health.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.Files != nil {
		deps.Files.RegisterRoutes(api)
	}
	if deps.Relay != nil {
		deps.Relay.RegisterRoutes(api, middleware.RateLimit(middleware.PerMinute(cfg.SendRatePerMin), deps.SendLimiter))
	}

	return r
}

// index serves the web app entry page, or a plain liveness text when no
// web app is deployed alongside the service.
func index(webAppDir string) gin.HandlerFunc {
	page := ""
	if webAppDir != "" {
		page = filepath.Join(webAppDir, "index.html")
	}
	return func(c *gin.Context) {
		if page != "" {
			if st, err := os.Stat(page); err == nil && !st.IsDir() {
				c.File(page)
				return
			}
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexFallback))
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
