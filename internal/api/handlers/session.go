package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuptoss/internal/auth"
	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/game"
)

const snapshotTimeout = 2 * time.Second

type createSessionRequest struct {
	Nickname string `json:"nickname"`
}

// CreateSession starts a session for a nickname and returns the token the client
// presents on the websocket.
func CreateSession(mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nickname required"})
			return
		}

		s, err := mgr.CreateSession(req.Nickname)
		if errors.Is(err, game.ErrInvalidNickname) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		} else if err != nil {
			log.Printf("[SESSION] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		token, err := auth.IssueSessionToken(cfg.JWTSecret, s.ID, s.Nickname, cfg.SessionTokenTTL())
		if err != nil {
			log.Printf("[SESSION] token for %s: %v", s.ID, err)
			mgr.RemoveSession(s.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id":   s.ID,
			"nickname":     s.Nickname,
			"token":        token,
			"ws_url":       fmt.Sprintf("/api/v1/sessions/%s/ws?token=%s", s.ID, token),
			"throw_budget": cfg.ThrowBudget,
		})
	}
}

// GetSession returns the current snapshot of a session with a refreshed token, so a player
// who keeps playing never holds an expired one.
func GetSession(mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := mgr.GetSession(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		reply := make(chan game.Snapshot, 1)
		if !s.Send(game.SnapshotCmd{Reply: reply}) {
			c.JSON(http.StatusGone, gin.H{"error": "Session ended"})
			return
		}
		select {
		case snap := <-reply:
			token, err := auth.IssueSessionToken(cfg.JWTSecret, s.ID, s.Nickname, cfg.SessionTokenTTL())
			if err != nil {
				log.Printf("[SESSION] refresh token for %s: %v", s.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"session_id": s.ID,
				"nickname":   s.Nickname,
				"created_at": s.CreatedAt,
				"token":      token,
				"state":      snap,
			})
		case <-s.Done():
			c.JSON(http.StatusGone, gin.H{"error": "Session ended"})
		case <-time.After(snapshotTimeout):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session busy"})
		}
	}
}

// EndSession stops a session. Any pending rank reveal is dropped with it.
func EndSession(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := mgr.RemoveSession(c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
