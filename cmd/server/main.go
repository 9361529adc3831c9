package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrezvani/vocaflash/internal/api"
	"github.com/mrezvani/vocaflash/internal/config"
	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/services"
	"github.com/mrezvani/vocaflash/internal/session"
	"github.com/mrezvani/vocaflash/internal/srs"
	"github.com/mrezvani/vocaflash/internal/store/sqlite"
	"github.com/mrezvani/vocaflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithConsole(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocaFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	// Open database
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		db.Close()
	}()

	// Scheduler
	scheduler, err := srs.NewScheduler(cfg.Scheduler)
	if err != nil {
		log.Error("failed to build scheduler: %v", err)
		os.Exit(1)
	}

	// Background stats refresh
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	statsQueue := worker.NewStatsQueue(statsPool, db)

	// Initialize services
	sessions := session.NewManager()
	collectionService := services.NewCollectionService(db)
	cardService := services.NewCardService(db, db, scheduler)
	reviewService := services.NewReviewService(db, scheduler, sessions, statsQueue)
	statsService := services.NewStatsService(db)

	srv := &api.Server{
		CollectionService: collectionService,
		CardService:       cardService,
		ReviewService:     reviewService,
		StatsService:      statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	statsPool.Stop()

	log.Info("===========================================")
	log.Info("VocaFlash Server Stopped")
	log.Info("===========================================")
}
