package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/config"
	"github.com/fhuszti/cameraroll-ms-go/internal/db"
	"github.com/fhuszti/cameraroll-ms-go/internal/handler/api"
	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/metadata"
	cMiddleware "github.com/fhuszti/cameraroll-ms-go/internal/middleware"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/cameraroll-ms-go/internal/storage"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	gallerySvc "github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
	msuuid "github.com/fhuszti/cameraroll-ms-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	index := mariadb.NewMediaIndexRepository(database.DB)
	store := storage.NewLocalStore(cfg.PicturesDir)
	extractor := metadata.NewExtractor(store, metadata.NewFFProbe(cfg.FFProbePath))
	source := initSource(ctx, cfg)

	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis task queue enabled")
	} else {
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, background tasks are disabled")
	}

	photoListerSvc := gallerySvc.NewPhotoLister(index, extractor)
	r.Post("/gallery/get_photos", api.GetPhotosHandler(photoListerSvc))

	scannerSvc := gallerySvc.NewFileScanner(index, store, extractor, msuuid.NewUUID)
	exporterSvc := gallerySvc.NewMediaExporter(store, source, scannerSvc, dispatcher)
	r.Post("/gallery/save", api.SaveMediaHandler(exporterSvc))

	albumListerSvc := gallerySvc.NewAlbumLister(index)
	r.Get("/gallery/albums", api.ListAlbumsHandler(albumListerSvc))

	rescannerSvc := gallerySvc.NewLibraryRescanner(index, store, dispatcher)
	r.Post("/gallery/rescan", api.RescanHandler(rescannerSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithServiceAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initSource(ctx context.Context, cfg *config.Settings) gallerySvc.SourceOpener {
	if cfg.MinioEndpoint == "" {
		logger.Warn(ctx, "⚠️  MinIO not configured, only local export sources are supported")
		return storage.NewSource()
	}

	source, err := storage.NewSourceWithMinio(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return source
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
