package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const isoTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (h *handlerImpl) HandleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to Planner API",
		"status":  "running",
		"endpoints": gin.H{
			"health": "/api/health",
			"users":  "/api/users",
			"tasks":  "/api/tasks",
		},
	})
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(isoTimestampLayout),
	})
}
