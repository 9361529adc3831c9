package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mrezvani/vocaflash/internal/srs"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	StatsWorkerCount int
	StatsQueueSize   int
	Scheduler        srs.Config
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	schedCfg := srs.DefaultConfig()
	schedCfg.InitialIntervalDays = envFloatOr("SRS_INITIAL_INTERVAL_DAYS", schedCfg.InitialIntervalDays)
	schedCfg.SecondIntervalDays = envFloatOr("SRS_SECOND_INTERVAL_DAYS", schedCfg.SecondIntervalDays)
	schedCfg.MinimumIntervalDays = envFloatOr("SRS_MINIMUM_INTERVAL_DAYS", schedCfg.MinimumIntervalDays)
	schedCfg.MinEaseFactor = envFloatOr("SRS_MIN_EASE_FACTOR", schedCfg.MinEaseFactor)
	schedCfg.MaxEaseFactor = envFloatOr("SRS_MAX_EASE_FACTOR", schedCfg.MaxEaseFactor)

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:vocaflash.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 64),
		Scheduler:        schedCfg,
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.StatsWorkerCount < 1 {
		return fmt.Errorf("STATS_WORKER_COUNT must be at least 1, got %d", c.StatsWorkerCount)
	}
	if c.StatsQueueSize < 1 {
		return fmt.Errorf("STATS_QUEUE_SIZE must be at least 1, got %d", c.StatsQueueSize)
	}
	if err := c.Scheduler.Validate(); err != nil {
		return fmt.Errorf("scheduler config: %w", err)
	}
	return nil
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

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
