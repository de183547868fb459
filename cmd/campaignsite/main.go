// Package main is the entry point for the campaign site blog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaignsite/internal/blog"
	"campaignsite/internal/config"
	"campaignsite/internal/database"
	"campaignsite/internal/handlers"
	"campaignsite/internal/middleware"
	"campaignsite/internal/models"
	"campaignsite/internal/render"
	"campaignsite/internal/router"
	"campaignsite/internal/store"
	"campaignsite/internal/valkey"
)

func main() {
	// Text logs in development, JSON elsewhere. Configuration is not loaded
	// yet, so APP_ENV is read directly.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if env := os.Getenv("APP_ENV"); env == "" || env == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"valkey", cfg.UseValkey(),
		"trust_proxy", cfg.TrustProxyHeaders,
		"cors_origins", len(cfg.CORSAllowedOrigins),
	)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed sample posts (no-op if any post exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Write rate limiter: shared through Valkey when configured, otherwise
	// per process.
	var limiter middleware.Limiter
	if cfg.UseValkey() {
		valkeyClient, err := valkey.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		limiter = valkey.NewSlidingWindowLimiter(valkeyClient, "blog-write", cfg.WriteRateLimit, cfg.WriteRateWindow)
	} else {
		rl := middleware.NewRateLimiter(cfg.WriteRateLimit, cfg.WriteRateWindow)
		defer rl.Stop()
		limiter = rl
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	svc := blog.NewService(store.NewPostStore(db))

	locales := make([]string, len(models.Languages))
	for i, l := range models.Languages {
		locales[i] = string(l)
	}

	r := router.New(handlers.NewBlogAPI(svc), handlers.NewPublic(svc, renderer), router.Options{
		APIKey:       cfg.APIKey,
		WriteLimiter: limiter,
		TrustProxy:   cfg.TrustProxyHeaders,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Locale: middleware.LocaleConfig{
			Locales: locales,
			Default: string(models.LanguageEnglish),
			Cookie:  cfg.LocaleCookie,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
