// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/content"
	"github.com/olegiv/folio-go/internal/handler"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/notify"
	"github.com/olegiv/folio-go/internal/render"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/session"
	"github.com/olegiv/folio-go/internal/settings"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - Personal Portfolio Server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH           SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL         Redis URL for cross-process change notification (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_RESUME_PATH       Resume file served at /resume (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DO_SEED           Seed demo portfolio content (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if err := store.SeedDemo(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	queries := store.New(db)
	svc := content.New(queries, logger)

	// Change notification bus: Redis when configured, in-process otherwise
	var bus notify.Bus
	if cfg.UseRedisNotify() {
		redisBus, err := notify.NewRedisBusFromURL(cfg.RedisURL, logger)
		if err != nil {
			return fmt.Errorf("connecting notification bus: %w", err)
		}
		bus = redisBus
		slog.Info("redis notification bus connected")
	} else {
		bus = notify.NewMemoryBus(logger)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			slog.Error("closing notification bus", "error", err)
		}
	}()

	// Settings snapshot store with live reload
	settingsStore := settings.New(queries, bus, logger, settings.DefaultConfig())
	if err := settingsStore.Load(ctx); err != nil {
		// Startup proceeds with an empty snapshot; sections fall back to visible defaults.
		slog.Warn("initial settings load failed", "error", err)
	}
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go settingsStore.Run(watchCtx)

	sessionManager := session.New(db, cfg.IsDevelopment())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("accessing templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("accessing static assets: %w", err)
	}

	frontendHandler := handler.NewFrontendHandler(svc, settingsStore, renderer, logger)
	contactHandler := handler.NewContactHandler(svc, renderer, logger, cfg.ResumePath)
	adminHandler := handler.NewAdminHandler(queries, svc, settingsStore, bus, renderer, logger)
	healthHandler := handler.NewHealthHandler(db, appVersion)

	// Event log retention
	sched := scheduler.New(db, logger, cfg.EventRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	r.Get("/healthz", healthHandler.Health)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", frontendHandler.Home)
	r.Get("/case-studies/{id}", frontendHandler.CaseStudy)
	r.Get("/blog/{id}", frontendHandler.BlogPost)
	r.Get("/resume", contactHandler.Resume)

	r.Group(func(r chi.Router) {
		r.Use(middleware.IPRateLimit(cfg.ContactRateRPS, cfg.ContactRateBurst))
		r.Post("/contact", contactHandler.Submit)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", adminHandler.Dashboard)
		r.Post("/submissions/{id}/read", adminHandler.MarkSubmissionRead)
		r.Post("/settings/{section}", adminHandler.UpdateSetting)
	})

	r.NotFound(frontendHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
