// Package main is the entry point for the Crab CMS server.
// It loads configuration, connects to services, selects a storage adapter,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crabcms/internal/cache"
	"crabcms/internal/config"
	"crabcms/internal/handlers"
	"crabcms/internal/render"
	"crabcms/internal/router"
	"crabcms/internal/session"
	"crabcms/internal/storage"
	"crabcms/internal/storage/local"
	"crabcms/internal/storage/remote"
)

func main() {
	// Structured logger — outputs text for development readability.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"adapter", cfg.StorageAdapter,
	)

	// Connect to Valkey (content for the local adapter, sessions, page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Select the storage adapter. Both implement the same contract, so
	// everything downstream is adapter-agnostic.
	var db storage.Adapter
	switch cfg.StorageAdapter {
	case config.AdapterLocal:
		db = local.New(valkeyClient, cfg.SimulateLatency)
	case config.AdapterRemote:
		db = remote.New(cfg.ContentURL, cfg.ExportPath())
	}

	// Connect seeds default content on first run (or falls back to seed
	// data when the remote document is unreachable).
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Connect(ctx); err != nil {
		cancel()
		slog.Error("storage adapter connect failed", "error", err)
		os.Exit(1)
	}
	cancel()

	// Initialize session store backed by Valkey.
	sessionStore := session.NewStore(valkeyClient)

	// Initialize the HTML template renderer. In dev mode, templates load
	// assets from CDN; in production they use local static files.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Full-page HTML cache for the public site.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(db, renderer, pageCache, cfg.StorageAdapter)
	authHandlers := handlers.NewAuth(renderer, sessionStore)
	publicHandlers := handlers.NewPublic(db, renderer, pageCache)

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, secureCookies)

	// Create the HTTP server with sensible timeouts.
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

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
