package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/frasnym/swagger-api-pets/internal/adapters/storage/memory"
	"github.com/frasnym/swagger-api-pets/internal/adapters/storage/postgres"
	"github.com/frasnym/swagger-api-pets/internal/adapters/storage/sqlite"
	"github.com/frasnym/swagger-api-pets/internal/config"
	"github.com/frasnym/swagger-api-pets/internal/domain/pets"
	"github.com/frasnym/swagger-api-pets/internal/platform/logger"
	"github.com/frasnym/swagger-api-pets/internal/router"
)

// @title        Swagger API Pets
// @version      1.0
// @description  Minimal CRUD API over a single collection of pets.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	repo, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	svc := pets.NewService(repo, log)

	r := router.NewRouter(router.Options{
		Pets:   svc,
		Logger: log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", cfg.Storage),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

// openStore picks the storage backend from config. The returned func closes
// whatever was opened; for the in-memory store it is a no-op.
func openStore(cfg config.Config, log *zap.Logger) (pets.Repository, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPetsRepo(db, log), func() { _ = db.Close() }, nil
	case config.StorageMemory:
		return memory.NewPetRepo(), func() {}, nil
	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewPetsRepo(db, log), func() { _ = db.Close() }, nil
	}
}
