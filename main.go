package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omnigrid/internal/config"
	"omnigrid/internal/logger"
	"omnigrid/internal/pipeline"
	"omnigrid/internal/server"
	"omnigrid/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), logger.ParseFormat(cfg.LogFormat), os.Stdout)
	logger.SetGlobal(log)

	log.Infof("Omni-Grid Analytics Tool v%s", config.GetVersion())
	log.Infof("Storage backend: %s", cfg.StorageBackend)

	store, err := storage.NewStorageClient(ctx, storage.Backend(cfg.StorageBackend), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}

	switch cfg.RunMode {
	case "serve":
		runServer(cfg, store)
	default:
		runOnce(ctx, cfg, store)
	}
}

// runOnce performs a single analysis run and exits
func runOnce(ctx context.Context, cfg *config.Config, store storage.StorageClient) {
	defer store.Close()

	result, err := pipeline.New(cfg, store).Run(ctx)
	if err != nil {
		logger.Fatal("Analysis run failed", err)
	}

	logger.Infof("Report folder: %s", result.ReportFolder)
}

// runServer starts the HTTP server and blocks until shutdown
func runServer(cfg *config.Config, store storage.StorageClient) {
	srv := server.NewServer(cfg, store)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Analysis runs can take a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped")
}
