package main

import (
	"context"
	"log"

	"github.com/fhuszti/cameraroll-ms-go/internal/config"
	"github.com/fhuszti/cameraroll-ms-go/internal/db"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/cameraroll-ms-go/internal/storage"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	gallerySvc "github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	index := mariadb.NewMediaIndexRepository(database.DB)
	store := storage.NewLocalStore(cfg.PicturesDir)

	rescanner := gallerySvc.NewLibraryRescanner(index, store, dispatcher)
	count, err := rescanner.RescanLibrary(context.Background())
	if err != nil {
		log.Fatalf("❌  Library rescan failed: %v", err)
	}
	log.Printf("✅  Library rescan completed, %d file(s) enqueued", count)
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
