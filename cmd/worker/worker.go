package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/ai"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/config"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/database"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/queue"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/telemetry"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL is required for the worker")
	}

	logger.Init(cfg.GinMode)

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("metrics disabled", "error", err)
	}

	// Connect to Postgres
	db, err := config.ConnectPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Postgres:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatal("Failed to initialize schema:", err)
	}
	cancel()

	// Initialize Gemini generator
	gemini, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiRPM)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}
	defer gemini.Close()

	registry := ai.NewRegistry()
	registry.Register("gemini", gemini)

	invoker := services.NewChunkInvoker(registry, cfg.ChunkTimeout)
	jobs := database.NewJobRepository(db)
	orc := services.NewOrchestrator(jobs, invoker, services.Options{
		ChunkConcurrency: cfg.ChunkConcurrency,
		Metrics:          metrics,
	})

	redisOpt, err := config.AsynqRedisOpt(cfg)
	if err != nil {
		log.Fatal("Failed to configure task queue:", err)
	}

	// Create Asynq server
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.WorkerCount,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	// Create task processor
	processor := queue.NewProcessor(orc)

	// Create mux and register handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskProcessTranscript, processor.HandleProcessTranscript)

	logger.Info("starting worker", "concurrency", cfg.WorkerCount, "redis", cfg.RedisURL)

	// Start the server
	if err := server.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
