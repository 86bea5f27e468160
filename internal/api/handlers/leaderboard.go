package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/leaderboard"
)

const maxLeaderboardLimit = 100

// GetLeaderboard lists the best scores, ?limit=N (default from config).
func GetLeaderboard(board leaderboard.Board, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := cfg.LeaderboardSize
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		if limit > maxLeaderboardLimit {
			limit = maxLeaderboardLimit
		}

		entries, err := board.Top(c.Request.Context(), limit)
		if err != nil {
			log.Printf("[LEADERBOARD] top %d: %v", limit, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
			return
		}
		if entries == nil {
			entries = []leaderboard.Entry{}
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}
