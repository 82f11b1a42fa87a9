package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aren-backend/internal/config"
	"aren-backend/internal/database"
	"aren-backend/internal/handlers"
	"aren-backend/internal/middleware"
	"aren-backend/internal/router"
	"aren-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Aren Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Chat Backend ────
	backend, err := services.NewChatBackend(context.Background(), services.BackendOptions{
		Kind:          cfg.LLMBackend,
		Model:         cfg.LLMModel,
		OllamaURL:     cfg.OllamaURL,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		GeminiAPIKey:  cfg.GeminiAPIKey,
	})
	if err != nil {
		log.Fatalf("✗ Chat backend initialization failed: %v", err)
	}
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}
	log.Printf("✓ Chat backend initialized (%s, model %s)", backend.Name(), backend.Model())

	// ──── Step 3: Initialize Rate Limiter ────
	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMin, time.Minute)
		log.Println("✓ Redis rate limiter connected")
	} else {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
		log.Println("✓ In-memory rate limiter ready")
	}

	// ──── Initialize Services ────
	composer := services.NewPromptComposer(services.Persona{
		Name:    cfg.TutorName,
		Animal:  cfg.TutorAnimal,
		Subject: cfg.TutorSubject,
	})
	tutorService := services.NewTutorService(composer, services.NewChatRelay(backend))

	// ──── Initialize Handlers ────
	tutorHandler := handlers.NewTutorHandler(tutorService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(tutorHandler, limiter, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Aren Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
