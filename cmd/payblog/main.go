// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/payblog-go/internal/cache"
	"github.com/olegiv/payblog-go/internal/cms"
	"github.com/olegiv/payblog-go/internal/config"
	"github.com/olegiv/payblog-go/internal/handler"
	"github.com/olegiv/payblog-go/internal/logging"
	"github.com/olegiv/payblog-go/internal/middleware"
	"github.com/olegiv/payblog-go/internal/render"
	"github.com/olegiv/payblog-go/internal/service"
	"github.com/olegiv/payblog-go/internal/version"
	"github.com/olegiv/payblog-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "payblog - Blog frontend for a Payload CMS backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_CMS_URL           CMS base URL (required, e.g. http://localhost:3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAYBLOG_CACHE_TTL         Feed cache TTL in seconds (default: 60)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/olegiv/payblog-go\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("payblog %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (ignore errors - file is optional)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(logging.NewRequestPathHandler(textHandler))
	slog.SetDefault(logger)

	// CMS API client
	client := cms.New(cfg.CMSBaseURL)
	slog.Info("cms client initialized", "url", cfg.CMSBaseURL)

	// Feed cache: Redis when configured, in-memory otherwise
	cacheCfg := cache.DefaultConfig()
	cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg.MaxSize = cfg.CacheMaxSize
	if cfg.UseRedisCache() {
		cacheCfg.Type = "redis"
		cacheCfg.RedisURL = cfg.RedisURL
		cacheCfg.Prefix = cfg.CachePrefix
		cacheCfg.FallbackToMemory = true
	}
	feedCache, err := cache.New(cacheCfg)
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer func() {
		if err := feedCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("feed cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("feed cache initialized", "backend", "memory")
	}

	postService := service.NewPostService(client, feedCache, cacheCfg.DefaultTTL)

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Handlers
	authHandler := handler.NewAuthHandler(client, cfg.IsDevelopment())
	postHandler := handler.NewPostHandler(client, postService)
	categoryHandler := handler.NewCategoryHandler(client)
	frontendHandler := handler.NewFrontendHandler(renderer, postService)
	healthHandler := handler.NewHealthHandler(client, versionInfo)

	// Login rate limiter
	loginLimiter := middleware.NewLoginLimiter(middleware.LoginLimiterConfig{
		RateLimit: cfg.LoginRateLimit,
		Burst:     cfg.LoginBurst,
	})
	defer loginLimiter.Close()
	slog.Info("login protection initialized",
		"rate", cfg.LoginRateLimit, "burst", cfg.LoginBurst)

	// CSRF protection (Fetch metadata based, no cookies)
	csrfProtect := middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(middleware.LoadUser(client))

	// Frontend
	r.Get("/", frontendHandler.Home)

	// Auth
	r.Group(func(r chi.Router) {
		r.Use(csrfProtect)
		r.With(loginLimiter.Middleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})
	r.Get("/me", authHandler.Me)

	// Posts
	r.Group(func(r chi.Router) {
		r.Use(csrfProtect)
		r.Use(middleware.RequireUser("You must be logged in to create a post"))
		r.Post("/posts", postHandler.Create)
	})

	// Categories
	r.Get("/api/categories", categoryHandler.List)

	// Health checks
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)

	// Static files with long-lived cache headers
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for slow connections
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
