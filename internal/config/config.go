package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	DatabaseURL string

	// RedisURL is optional. When set, the API enqueues runs on the asynq
	// task queue and completed results are cached; when empty, runs
	// execute on the in-process worker pool.
	RedisURL      string
	RedisPassword string
	RedisDB       int

	GeminiAPIKey string
	GeminiRPM    int

	DefaultChunkSize int
	DefaultOverlap   int
	ChunkConcurrency int
	ChunkTimeout     time.Duration

	WorkerCount int
	QueueDepth  int

	CacheTTL       time.Duration
	StaleThreshold time.Duration
	SweepInterval  time.Duration

	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5167"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiRPM:    getEnvInt("GEMINI_RPM", 10),

		DefaultChunkSize: getEnvInt("DEFAULT_CHUNK_SIZE", 5000),
		DefaultOverlap:   getEnvInt("DEFAULT_OVERLAP", 1000),
		ChunkConcurrency: getEnvInt("CHUNK_CONCURRENCY", 3),
		ChunkTimeout:     getEnvDuration("CHUNK_TIMEOUT", 2*time.Minute),

		WorkerCount: getEnvInt("WORKER_COUNT", 2),
		QueueDepth:  getEnvInt("QUEUE_DEPTH", 64),

		CacheTTL:       getEnvDuration("CACHE_TTL", time.Hour),
		StaleThreshold: getEnvDuration("STALE_THRESHOLD", 30*time.Minute),
		SweepInterval:  getEnvDuration("SWEEP_INTERVAL", 5*time.Minute),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
