package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedyapps/dealdesk/internal/auth"
	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/http/handler"
	"github.com/jedyapps/dealdesk/internal/http/middleware"
	"github.com/jedyapps/dealdesk/internal/http/router"
	"github.com/jedyapps/dealdesk/internal/hubspot"
	"github.com/jedyapps/dealdesk/internal/logger"
	"github.com/jedyapps/dealdesk/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	if cfg.Session.Secret == "" {
		if cfg.App.Environment == "production" || cfg.App.Environment == "staging" {
			return fmt.Errorf("SESSION_SECRET is required in %s", cfg.App.Environment)
		}
		log.Warn("SESSION_SECRET not set, using development fallback")
		cfg.Session.Secret = "dev-session-secret"
	}

	if cfg.HubSpot.SampleDataMode() {
		log.Warn("No usable HubSpot API key configured, serving built-in sample data")
	}

	// Initialize CRM client and caches
	crmClient := hubspot.NewClient(&cfg.HubSpot, log)
	stageCache := hubspot.NewStageCache(crmClient, log)
	ownerCache := hubspot.NewOwnerCache(crmClient, log)

	// Initialize services
	dealService := service.NewDealService(crmClient, stageCache, ownerCache, &cfg.HubSpot, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	googleClient := auth.NewGoogleClient(&cfg.Google)
	sessionCodec := auth.NewSessionCodec(&cfg.Session)
	authHandler := handler.NewAuthHandler(googleClient, sessionCodec, cfg, log)
	dealHandler := handler.NewDealHandler(dealService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		authHandler,
		dealHandler,
		dealService,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
