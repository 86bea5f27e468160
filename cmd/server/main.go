package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/cuptoss/internal/api"
	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/game"
	"github.com/playmatatu/cuptoss/internal/leaderboard"
	"github.com/playmatatu/cuptoss/internal/redis"
	"github.com/playmatatu/cuptoss/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Leaderboard: Redis when configured, otherwise in memory
	var board leaderboard.Board
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		rb := leaderboard.NewRedisBoard(rdb, "", cfg.LeaderboardTTL())
		if err := rb.Seed(ctx, leaderboard.DefaultSeed...); err != nil {
			log.Printf("[LEADERBOARD] seeding failed: %v", err)
		}
		board = rb
		log.Printf("[LEADERBOARD] using Redis (ttl=%s)", cfg.LeaderboardTTL())
	} else {
		board = leaderboard.NewMemoryBoard(leaderboard.DefaultSeed...)
		log.Println("[LEADERBOARD] REDIS_URL not set - using in-memory leaderboard")
	}

	mgr := game.NewSessionManager(board, cfg)
	defer mgr.Shutdown()
	go mgr.StartExpiryChecker(ctx)

	hub := ws.NewHub()
	go hub.Run()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, mgr, hub, board, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting cuptoss server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
