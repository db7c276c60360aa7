package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jhaShwet/content-generation/internal/metrics"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/", handler.Welcome)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Content lifecycle endpoints. Trailing slashes match the paths the
	// frontend already calls.
	router.POST("/generate/", handler.Generate)
	router.POST("/submit/", handler.Submit)
	router.POST("/search/", handler.Search)
}
