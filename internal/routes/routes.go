package routes

import (
	"net/http"

	"sakanly_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route on the engine.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		appHandlers.PropertyHandler.RegisterRoutes(api)
		appHandlers.TestimonialHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
	}
}
