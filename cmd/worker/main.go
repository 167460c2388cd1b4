package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/config"
	"github.com/fhuszti/cameraroll-ms-go/internal/db"
	workerHandler "github.com/fhuszti/cameraroll-ms-go/internal/handler/worker"
	"github.com/fhuszti/cameraroll-ms-go/internal/metadata"
	"github.com/fhuszti/cameraroll-ms-go/internal/preview"
	"github.com/fhuszti/cameraroll-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/cameraroll-ms-go/internal/storage"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	gallerySvc "github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
	msuuid "github.com/fhuszti/cameraroll-ms-go/internal/uuid"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	index := mariadb.NewMediaIndexRepository(database.DB)
	store := storage.NewLocalStore(cfg.PicturesDir)
	extractor := metadata.NewExtractor(store, metadata.NewFFProbe(cfg.FFProbePath))

	scannerSvc := gallerySvc.NewFileScanner(index, store, extractor, msuuid.NewUUID)
	previewSvc := gallerySvc.NewPreviewGenerator(index, store, preview.NewEncoder(cfg.PreviewsDir))

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeScanFile, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseScanFilePayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ScanFileHandler(ctx, p, scannerSvc)
	})
	mux.HandleFunc(task.TypeGeneratePreview, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGeneratePreviewPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.GeneratePreviewHandler(ctx, p, previewSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
