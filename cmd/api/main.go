package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emoscan/emoscan/internal/api"
	"github.com/emoscan/emoscan/internal/classifier/onnx"
	"github.com/emoscan/emoscan/internal/config"
	"github.com/emoscan/emoscan/internal/database"
	"github.com/emoscan/emoscan/internal/face"
	"github.com/emoscan/emoscan/internal/repository"
	"github.com/emoscan/emoscan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting EmoScan API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("detector", cfg.DetectorType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database pool
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Face detector
	faceDetector, err := face.NewDetector(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize face detector: %w", err)
	}

	// ONNX scorer
	scorer, err := onnx.New(cfg.ModelPath, cfg.ModelMetadataPath)
	if err != nil {
		return fmt.Errorf("failed to load emotion model: %w", err)
	}
	defer scorer.Close()

	// Pipeline service
	repo := repository.NewSubmissionRepository(pool)
	predictionService := service.NewPredictionService(faceDetector, scorer, repo, logger)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		PredictionService: predictionService,
		DB:                pool,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
