package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/adapters/llm"
	"github.com/satriahrh/voxverify/domain/repositories"
	"github.com/satriahrh/voxverify/internal/api"
	"github.com/satriahrh/voxverify/internal/config"
	"github.com/satriahrh/voxverify/usecase"
	"github.com/satriahrh/voxverify/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize logger
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize adapters
	var classifier repositories.VoiceClassifier
	switch cfg.Classifier {
	case config.ClassifierMock:
		classifier = llm.NewMockGeminiClassifier()
		logger.Warn("Using mock classifier, verdicts are canned")
	default:
		classifier, err = llm.NewGeminiClassifier(llm.GeminiConfig{
			Model:          cfg.Model,
			ThinkingBudget: cfg.ThinkingBudget,
			BaseURL:        cfg.GeminiBaseURL,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create Gemini classifier", zap.Error(err))
		}
	}

	if os.Getenv(config.APIKeyEnv) == "" {
		logger.Warn("API_KEY is not set, analysis requests will fail until it is")
	}

	// Initialize usecase services
	detectionService := usecase.NewDetectionService(classifier, usecase.EnvCredential(config.APIKeyEnv), logger)

	var assets fs.FS
	if cfg.ServeUI {
		assets = web.Assets()
		if cfg.StaticDir != "" {
			assets = os.DirFS(cfg.StaticDir)
		}
	}

	e := api.NewServer(detectionService, api.Options{
		BodyLimit: cfg.BodyLimit,
		Assets:    assets,
	}, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start("0.0.0.0:" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("VoxVerify bridge started",
		zap.String("port", cfg.Port),
		zap.String("classifier", classifier.Name()),
		zap.Bool("ui", cfg.ServeUI))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
