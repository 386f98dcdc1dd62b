package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopvoice/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Ephemeral realtime credential for the widget's WebRTC session
	router.GET("/token", handler.IssueToken)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		search := v1.Group("/search")
		{
			search.POST("", handler.Search)
			search.POST("/more", handler.MoreResults)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/reload", handler.ReloadCatalog)
		}
	}

	// Static widget files; everything unmatched falls through to the file server
	if cfg.Server.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Server.StaticDir))))
	}

	return router
}
