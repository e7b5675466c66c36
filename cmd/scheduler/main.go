package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoplift/autopilot/internal/channel"
	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/scheduler"
	"github.com/shoplift/autopilot/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "autopilot-scheduler",
	})
	logger.SetDefault(appLogger)

	ch, err := channel.New(&cfg.Channel, &cfg.OpenAPI)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize channel")
	}

	sched := scheduler.New(
		service.NewOrderManager(ch),
		service.NewAnalyticsService(),
		&cfg.Scheduler,
		appLogger,
	)
	if err := sched.Register(); err != nil {
		appLogger.WithError(err).Fatal("Failed to register jobs")
	}
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down scheduler")
	sched.Stop()
}
