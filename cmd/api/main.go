package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/config"
	"github.com/rowanberg/guestbook-server/internal/db"
	"github.com/rowanberg/guestbook-server/internal/export"
	"github.com/rowanberg/guestbook-server/internal/guestbook"
	"github.com/rowanberg/guestbook-server/internal/handlers"
	"github.com/rowanberg/guestbook-server/internal/media"
	"github.com/rowanberg/guestbook-server/internal/middleware"
	"github.com/rowanberg/guestbook-server/internal/store"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load configuration", "error", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalw("Failed to initialize PostgreSQL", "error", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Fatalw("Failed to initialize Redis", "error", err)
	}
	defer redisClient.Close()

	// Initialize MinIO photo storage
	photoStorage, err := media.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Fatalw("Failed to initialize photo storage", "error", err)
	}

	entryStore := store.NewPostgresStore(postgresDB)
	ingestor := media.NewIngestor(photoStorage, logger)
	service := guestbook.NewService(entryStore, ingestor, redisClient, logger)
	handler := handlers.NewGuestbookHandler(service, logger)

	// Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware so the guestbook form can be served from elsewhere
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, "+middleware.AdminTokenHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Define routes
	v1 := router.Group("/api/v1")
	{
		entries := v1.Group("/entries")
		{
			entries.POST("/submit", handler.SubmitEntry)
			entries.GET("/feed", handler.PublicFeed)
		}

		// Moderation routes behind the shared admin credential
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware(cfg.AdminToken))
		{
			admin.GET("/entries", handler.AdminListEntries)
			admin.PATCH("/entries/:id/approval", handler.SetApproval)
			admin.DELETE("/entries/:id", handler.DeleteEntry)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Optional in-process snapshot schedule; the export CLI is the usual path
	var cronManager *cron.Cron
	if cfg.Export.Schedule != "" {
		cronManager = cron.New(cron.WithLocation(time.UTC))
		exporter := export.NewExporter(entryStore, &export.FetchResolver{
			Client:   &http.Client{Timeout: 30 * time.Second},
			PhotoDir: filepath.Join(cfg.Export.OutputDir, export.PhotoDirName),
		}, cfg.Export.OutputDir, cfg.Export.ExcludedIDs, logger)

		if _, err := cronManager.AddFunc(cfg.Export.Schedule, func() {
			if err := exporter.Run(context.Background()); err != nil {
				logger.Errorw("scheduled export failed", "error", err)
			}
		}); err != nil {
			logger.Fatalw("Invalid EXPORT_SCHEDULE", "schedule", cfg.Export.Schedule, "error", err)
		}
		cronManager.Start()
		logger.Infow("scheduled exports enabled", "schedule", cfg.Export.Schedule)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infow("server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	if cronManager != nil {
		cronManager.Stop()
	}

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalw("Server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
