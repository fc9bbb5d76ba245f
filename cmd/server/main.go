package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"denizsel-backend/internal/config"
	"denizsel-backend/internal/database"
	"denizsel-backend/internal/handlers"
	"denizsel-backend/internal/middleware"
	"denizsel-backend/internal/router"
	"denizsel-backend/internal/services"
)

func main() {
	if err := run(); err != nil {
		log.Printf("✗ %v", err)
		os.Exit(1)
	}
}

func run() error {
	log.Println("🚀 Starting Denizsel Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")
	if cfg.TrustProxy {
		log.Println("✓ Client IPs taken from proxy headers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Initialize Completion Provider ────
	var completer services.Completer
	switch cfg.AIProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("gemini client initialization failed: %w", err)
		}
		defer gemini.Close()
		completer = gemini
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	default:
		completer = services.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.UpstreamTimeout)
		log.Printf("✓ OpenAI client initialized (%s)", cfg.OpenAIModel)
	}
	completer = services.NewBreakerCompleter(cfg.AIProvider, completer, 5, 60*time.Second)

	// ──── Step 3: Initialize Rate Limit Store ────
	var store middleware.RateStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisClient.Close()
		store = middleware.NewRedisStore(redisClient, "ratelimit")
		log.Println("✓ Redis connected (shared rate limits)")
	} else {
		memStore := middleware.NewMemoryStore(time.Minute)
		defer memStore.Close()
		store = memStore
		log.Println("✓ In-memory rate limits")
	}

	// ──── Step 4: Initialize Services ────
	chatService := services.NewChatService(completer, cfg.ChatMaxTokens, cfg.ChatTemperature, cfg.UpstreamTimeout)
	mailDialer := services.NewSMTPDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.UpstreamTimeout)
	contactService := services.NewContactService(mailDialer, services.ContactSettings{
		OperatorEmail:  cfg.OperatorEmail,
		EmergencyPhone: cfg.EmergencyPhone,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		Timeout:        cfg.UpstreamTimeout,
	})

	// ──── Step 5: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chatService)
	contactHandler := handlers.NewContactHandler(contactService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		chatHandler,
		contactHandler,
		middleware.NewRateLimiter("chat", store, cfg.ChatRateLimit, time.Minute),
		middleware.NewRateLimiter("contact", store, cfg.ContactRateLimit, time.Minute),
		cfg.FrontendURL,
		cfg.TrustProxy,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("✓ Denizsel Backend ready on http://localhost:%s", cfg.Port)
		log.Printf("  API: http://localhost:%s/api", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
