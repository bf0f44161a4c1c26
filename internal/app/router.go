package app

import (
	"github.com/gin-gonic/gin"

	"github.com/courseforge/courseforge-backend/internal/handlers"
)

func wireRouter(handlerset Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/courses/generate", handlerset.Course.Generate)
		api.GET("/courses/:id", handlerset.Course.GetByID)
		api.GET("/courses/:id/events", handlerset.SSE.Stream)
	}

	return router
}
