package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuptoss/internal/api/handlers"
	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/game"
	"github.com/playmatatu/cuptoss/internal/leaderboard"
	"github.com/playmatatu/cuptoss/internal/middleware"
	"github.com/playmatatu/cuptoss/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, mgr *game.SessionManager, hub *ws.Hub, board leaderboard.Board, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(mgr, hub))
		v1.GET("/leaderboard", handlers.GetLeaderboard(board, cfg))

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession(mgr, cfg))
			sessions.GET("/:id", handlers.SessionAuth(cfg), handlers.GetSession(mgr, cfg))
			sessions.DELETE("/:id", handlers.SessionAuth(cfg), handlers.EndSession(mgr))
			sessions.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), ws.HandleSessionWebSocket(mgr, hub, cfg))
		}
	}
}
