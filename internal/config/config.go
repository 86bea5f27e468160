package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Redis (empty keeps the leaderboard in memory)
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Sessions
	SessionTimeoutMin          int
	ExpiryCheckIntervalSeconds int

	// Simulation
	FrameHz           int
	BroadcastHz       int
	ThrowBudget       int
	RankRevealDelayMs int

	// Leaderboard
	LeaderboardSize       int
	LeaderboardTTLMinutes int

	// Security
	JWTSecret              string
	SessionTokenTTLMinutes int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Sessions
		SessionTimeoutMin:          getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
		ExpiryCheckIntervalSeconds: getEnvInt("EXPIRY_CHECK_INTERVAL_SECONDS", 60),

		// Simulation
		FrameHz:           getEnvInt("FRAME_HZ", 60),
		BroadcastHz:       getEnvInt("BROADCAST_HZ", 30),
		ThrowBudget:       getEnvInt("THROW_BUDGET", 10),
		RankRevealDelayMs: getEnvInt("RANK_REVEAL_DELAY_MS", 800),

		// Leaderboard
		LeaderboardSize:       getEnvInt("LEADERBOARD_SIZE", 5),
		LeaderboardTTLMinutes: getEnvInt("LEADERBOARD_TTL_MINUTES", 0),

		// Security
		JWTSecret:              getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTokenTTLMinutes: getEnvInt("SESSION_TOKEN_TTL_MINUTES", 24*60),
	}
}

// SessionTimeout is how long a session may sit without player commands before it is reaped.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMin) * time.Minute
}

// SessionTokenTTL is how long a session token stays valid. It is independent of the idle
// timeout; GET /sessions/:id hands out a fresh token.
func (c *Config) SessionTokenTTL() time.Duration {
	return time.Duration(c.SessionTokenTTLMinutes) * time.Minute
}

func (c *Config) RankRevealDelay() time.Duration {
	return time.Duration(c.RankRevealDelayMs) * time.Millisecond
}

func (c *Config) LeaderboardTTL() time.Duration {
	return time.Duration(c.LeaderboardTTLMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
