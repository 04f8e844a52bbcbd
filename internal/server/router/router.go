package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/server/handlers"
)

// farmIDHeader carries the authenticated caller's farm identity, set by the
// upstream auth gateway. Session issuance itself lives outside this service.
const farmIDHeader = "X-Farm-ID"

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Flocks        *handlers.FlockHandler
	Stats         *handlers.StatsHandler
	Vaccinations  *handlers.VaccinationHandler
	Notifications *handlers.NotificationHandler
	Assistant     *handlers.AssistantHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(farmIdentityMiddleware())
	{
		api.POST("/flocks", h.Flocks.Create)
		api.GET("/flocks", h.Flocks.List)
		api.GET("/flocks/status-counts", h.Flocks.StatusCounts)
		api.GET("/flocks/:id", h.Flocks.Get)
		api.POST("/flocks/:id/health-events", h.Flocks.AppendHealthEvent)
		api.POST("/flocks/:id/feed-events", h.Flocks.AppendFeedEvent)
		api.POST("/flocks/:id/egg-events", h.Flocks.AppendEggEvent)

		api.GET("/statistics", h.Stats.FarmStatistics)
		api.GET("/statistics/feed", h.Stats.FeedConsumption)

		api.POST("/vaccinations", h.Vaccinations.Create)
		api.GET("/vaccinations", h.Vaccinations.List)
		api.PUT("/vaccinations/:id", h.Vaccinations.Update)
		api.DELETE("/vaccinations/:id", h.Vaccinations.Delete)

		api.GET("/notifications", h.Notifications.List)
		api.POST("/notifications", h.Notifications.Create)
		api.PATCH("/notifications/:id/read", h.Notifications.MarkRead)

		api.POST("/assistant/chat", h.Assistant.Chat)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func farmIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(farmIDHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing farm identity"})
			return
		}
		c.Set(handlers.FarmIDKey, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
