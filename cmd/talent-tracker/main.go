package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/terra-clan/talent-tracker/internal/api"
	"github.com/terra-clan/talent-tracker/internal/auth"
	"github.com/terra-clan/talent-tracker/internal/coach"
	"github.com/terra-clan/talent-tracker/internal/config"
	"github.com/terra-clan/talent-tracker/internal/llm"
	"github.com/terra-clan/talent-tracker/internal/prompts"
	"github.com/terra-clan/talent-tracker/internal/ratelimit"
	"github.com/terra-clan/talent-tracker/internal/services"
	"github.com/terra-clan/talent-tracker/internal/storage"
	"github.com/terra-clan/talent-tracker/migrations"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting talent-tracker",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	var migrationsFS fs.FS = migrations.FS
	if cfg.Database.MigrationsDir != "" {
		migrationsFS = os.DirFS(cfg.Database.MigrationsDir)
	}
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Initialize service registry
	registry := services.NewRegistry()
	registry.Register("postgres", repo)

	var serverOpts []api.Option
	var redisService *services.RedisService
	if cfg.Redis.Address != "" {
		redisService, err = services.NewRedisService(initCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		registry.Register("redis", redisService)

		limiter := ratelimit.NewRedisLimiter(redisService.Client(), "talent-tracker:coach", cfg.RateLimit.CoachRequests, cfg.RateLimit.CoachWindow)
		serverOpts = append(serverOpts, api.WithRateLimiter(limiter))
		slog.Info("coach rate limit enabled",
			"limit", cfg.RateLimit.CoachRequests,
			"window", cfg.RateLimit.CoachWindow.String(),
		)
	} else {
		slog.Warn("REDIS_ADDRESS not set, coach rate limiting disabled")
	}
	serverOpts = append(serverOpts, api.WithRegistry(registry))
	slog.Info("readiness checks registered", "services", registry.List())

	// Chat provider; a missing key is reported per coach request
	var provider llm.Provider
	if cfg.LLM.APIKey != "" {
		openai, err := llm.NewOpenAIProvider(cfg.LLM.APIKey, coach.Model,
			llm.WithBaseURL(cfg.LLM.BaseURL),
			llm.WithHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}),
		)
		if err != nil {
			slog.Error("failed to create chat provider", "error", err)
			os.Exit(1)
		}
		provider = openai
	} else {
		slog.Warn("OPENAI_API_KEY not set, coach requests will fail")
	}

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTAudience)
	if err != nil {
		slog.Error("failed to create token verifier", "error", err)
		os.Exit(1)
	}

	// Load quick actions
	quickActions := prompts.NewLoader()
	if err := quickActions.LoadDefaults(); err != nil {
		slog.Error("failed to load default quick actions", "error", err)
		os.Exit(1)
	}
	if cfg.Prompts.Dir != "" {
		if err := quickActions.LoadFromDir(cfg.Prompts.Dir); err != nil {
			slog.Warn("failed to load quick actions from dir", "dir", cfg.Prompts.Dir, "error", err)
		}
	}
	slog.Info("quick actions loaded", "count", quickActions.Len())

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start quick action reloader
	if cfg.Prompts.Dir != "" && cfg.Prompts.ReloadInterval > 0 {
		prompts.NewReloader(quickActions, cfg.Prompts.Dir, cfg.Prompts.ReloadInterval).Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, repo, coach.NewService(repo, provider), verifier, quickActions, serverOpts...)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if redisService != nil {
		if err := redisService.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if err := repo.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("talent-tracker stopped")
}
