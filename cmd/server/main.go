package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luvnft/Palm/internal/application/usecases"
	"github.com/luvnft/Palm/internal/config"
	domainservices "github.com/luvnft/Palm/internal/domain/services"
	"github.com/luvnft/Palm/internal/infrastructure/api"
	"github.com/luvnft/Palm/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	log.Printf("[boot] AI_BACKEND=%s MODEL_NAME=%s", cfg.Backend, cfg.Model)
	if cfg.RequestTimeout > 0 {
		log.Printf("[boot] REQUEST_TIMEOUT=%s", cfg.RequestTimeout)
	}

	// Initialize infrastructure layer
	aiService, err := services.NewImageTextAIService(cfg)
	if err != nil {
		log.Fatalf("Failed to create AI service: %v", err)
	}
	defer aiService.Close()

	// Initialize domain layer
	readingDomainService := domainservices.NewReadingDomainService(aiService)

	// Initialize application layer
	readingUseCase := usecases.NewReadingUseCase(readingDomainService, usecases.ReadingSettings{
		Model:   cfg.Model,
		Prompt:  cfg.Prompt,
		Timeout: cfg.RequestTimeout,
	})

	// Initialize API layer
	handler := api.NewReadingHandler(readingUseCase)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.Printf("Server running at http://localhost:%s/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}

	log.Println("Server stopped.")
}
