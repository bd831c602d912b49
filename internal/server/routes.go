package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all routes on the Gin router.
func registerRoutes(router *gin.Engine, deps Deps) {
	router.POST("/webhooks/github", handleWebhook(deps))

	api := router.Group("/api")
	api.PATCH("/cards/:id/complete", handleCardComplete(deps))
	api.POST("/cards/:id/sync", handleCardSync(deps))

	router.GET("/healthz", handleHealthz())
}

func handleHealthz() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
