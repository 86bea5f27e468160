package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuptoss/internal/game"
	"github.com/playmatatu/cuptoss/internal/ws"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(mgr *game.SessionManager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"service":     "cuptoss-api",
			"version":     version,
			"uptime":      time.Since(startTime).String(),
			"sessions":    mgr.Count(),
			"connections": hub.Count(),
		})
	}
}
