package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/config"
	"github.com/rowanberg/guestbook-server/internal/db"
	"github.com/rowanberg/guestbook-server/internal/export"
	"github.com/rowanberg/guestbook-server/internal/store"
)

func main() {
	offline := flag.Bool("offline", false, "resolve photos from the local photo directory instead of fetching")
	outDir := flag.String("out", "", "output directory (overrides EXPORT_OUTPUT_DIR)")
	flag.Parse()

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
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalw("Failed to initialize PostgreSQL", "error", err)
	}
	defer postgresDB.Close()

	photoDir := filepath.Join(cfg.Export.OutputDir, export.PhotoDirName)
	var resolver export.PhotoResolver
	if *offline {
		resolver = &export.CacheResolver{PhotoDir: photoDir}
	} else {
		resolver = &export.FetchResolver{
			Client:   &http.Client{Timeout: 30 * time.Second},
			PhotoDir: photoDir,
		}
	}

	exporter := export.NewExporter(
		store.NewPostgresStore(postgresDB),
		resolver,
		cfg.Export.OutputDir,
		cfg.Export.ExcludedIDs,
		logger,
	)

	start := time.Now()
	if err := exporter.Run(context.Background()); err != nil {
		logger.Fatalw("Export failed", "error", err)
	}
	logger.Infow("export completed", "output_dir", cfg.Export.OutputDir, "duration", time.Since(start).String())
}
