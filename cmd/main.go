package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/ai"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/config"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/database"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/queue"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/telemetry"
	"github.com/KRAadithiya/Meeting-Summarizer/middleware"
	"github.com/KRAadithiya/Meeting-Summarizer/routes"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Init(cfg.GinMode)

	// Tracing is opt-in; the exporter needs a reachable OTLP collector.
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("meeting-summarizer", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracer:", err)
		}
		defer shutdown()
	}
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
	meetings := database.NewMeetingRepository(db)

	orc := services.NewOrchestrator(jobs, invoker, services.Options{
		ChunkConcurrency: cfg.ChunkConcurrency,
		Metrics:          metrics,
	})

	// Result cache and scheduler. With Redis configured, runs go through
	// the asynq queue and are executed by the worker binary; without it,
	// everything runs in this process.
	var cache *services.ResultCache
	if cfg.RedisURL != "" {
		rdb, err := config.NewRedisClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer rdb.Close()
		cache = services.NewResultCache(rdb, cfg.CacheTTL)

		redisOpt, err := config.AsynqRedisOpt(cfg)
		if err != nil {
			log.Fatal("Failed to configure task queue:", err)
		}
		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		orc.SetScheduler(queue.NewScheduler(asynqClient))
		logger.Info("scheduling on asynq queue", "redis", rdb.Options().Addr)
	} else {
		cache = services.NewResultCache(nil, cfg.CacheTTL)

		pool := services.NewInProcessScheduler(orc, cfg.WorkerCount, cfg.QueueDepth)
		pool.Start()
		defer pool.Stop()
		orc.SetScheduler(pool)
		logger.Info("scheduling on in-process pool", "workers", cfg.WorkerCount)
	}

	sweeper, err := services.NewStaleJobSweeper(jobs, cfg.StaleThreshold, cfg.SweepInterval)
	if err != nil {
		log.Fatal("Failed to start stale job sweeper:", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("meeting-summarizer"))
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupSummaryRoutes(router, routes.SummaryDeps{
		Cfg:      cfg,
		Orc:      orc,
		Meetings: meetings,
		Cache:    cache,
	})
	routes.SetupMeetingRoutes(router, routes.MeetingDeps{
		Meetings: meetings,
		Cache:    cache,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("server exited")
}
