package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoplift/autopilot/internal/api"
	"github.com/shoplift/autopilot/internal/channel"
	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/repository"
	"github.com/shoplift/autopilot/internal/service"
	"github.com/shoplift/autopilot/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "autopilot-api",
	})
	logger.SetDefault(appLogger)

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	taskRepo := repository.NewTaskRepository(db)

	ch, err := channel.New(&cfg.Channel, &cfg.OpenAPI)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize channel")
	}
	appLogger.WithField(logger.FieldChannel, ch.Name()).Info("Channel selected")

	var artifacts storage.ArtifactStore
	if cfg.Artifacts.Enabled {
		store, err := storage.NewS3Store(&storage.S3Config{
			Endpoint:  cfg.Artifacts.Endpoint,
			AccessKey: cfg.Artifacts.AccessKey,
			SecretKey: cfg.Artifacts.SecretKey,
			UseSSL:    cfg.Artifacts.UseSSL,
			Bucket:    cfg.Artifacts.Bucket,
			Region:    cfg.Artifacts.Region,
			PublicURL: cfg.Artifacts.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize artifact store")
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure artifact bucket")
		}
		artifacts = store
	}

	executor := service.NewListingTaskExecutor(ch, taskRepo, artifacts, appLogger, &service.ExecutorConfig{
		FinalConfirmRequired: cfg.Channel.FinalConfirmRequired,
	})
	manager := service.NewProductManager(ch, service.NewContentGenerator(), taskRepo, executor, appLogger)
	orders := service.NewOrderManager(ch)
	analytics := service.NewAnalyticsService()
	inventory := service.NewInventoryManager(ch)

	router := api.SetupRouter(manager, orders, analytics, inventory, &cfg.Server)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}
}
