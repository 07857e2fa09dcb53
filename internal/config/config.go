package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Lifecycle policy windows.
	SessionTTL          time.Duration // store-level expiry since last update
	BattleTTL           time.Duration // store-level expiry since creation
	WaitingBattleWindow time.Duration // matchmaking cutoff for waiting battles
	WorkingSetMaxAge    time.Duration // in-memory scratch retention
	SweepInterval       time.Duration // GC job tick
	ReportCooldown      time.Duration // per-user report rate limit

	GCWorkerCount int
	GCQueueSize   int
	PageSize      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "quizarena.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		SessionTTL:          envDurationOr("SESSION_TTL", 6*time.Hour),
		BattleTTL:           envDurationOr("BATTLE_TTL", 30*24*time.Hour),
		WaitingBattleWindow: envDurationOr("WAITING_BATTLE_WINDOW", 10*time.Minute),
		WorkingSetMaxAge:    envDurationOr("WORKING_SET_MAX_AGE", 24*time.Hour),
		SweepInterval:       envDurationOr("SWEEP_INTERVAL", time.Minute),
		ReportCooldown:      envDurationOr("REPORT_COOLDOWN", 60*time.Second),

		GCWorkerCount: envIntOr("GC_WORKER_COUNT", 1),
		GCQueueSize:   envIntOr("GC_QUEUE_SIZE", 16),
		PageSize:      envIntOr("LEADERBOARD_PAGE_SIZE", 10),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
