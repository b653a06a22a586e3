package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"

	"github.com/claude/musclememo/internal/catalog"
	"github.com/claude/musclememo/internal/config"
	"github.com/claude/musclememo/internal/feedback"
	"github.com/claude/musclememo/internal/ingest/alpha"
	"github.com/claude/musclememo/internal/mcp"
	"github.com/claude/musclememo/internal/metrics"
	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/server"
	"github.com/claude/musclememo/internal/storage"
	"github.com/claude/musclememo/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("MuscleMemo starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *migrateOnly {
		if cfg.Storage.Driver != config.DriverPostgres {
			log.Info("migrate-only: sqlite needs no migrations")
			return
		}
		if err := storage.RunMigrations(cfg.Storage.Database.DSN()); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrate-only: exiting")
		return
	}

	// Open the state slot
	ctx := context.Background()
	slot, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer slot.Close()

	m := metrics.New()
	if db, ok := slot.(*storage.DB); ok {
		collector := pgxpoolprometheus.NewCollector(db.Pool, map[string]string{"db_name": cfg.Storage.Database.Name})
		if err := m.Register(collector); err != nil {
			log.Warn("pool metrics unavailable", "error", err)
		}
	}

	// Coaching feedback
	var gen feedback.Generator
	if cfg.Feedback.APIKey != "" {
		gen = feedback.NewGeminiClient(cfg.Feedback.APIKey, cfg.Feedback.Model, cfg.Feedback.BaseURL)
	} else {
		log.Warn("no Gemini API key configured, workouts get fallback feedback")
	}
	coach := feedback.NewCoach(gen, cfg.Feedback.Timeout, m, log)

	tracker, err := workout.New(ctx, catalog.New(nil), slot, coach, workout.Options{
		PersistCustom: cfg.Catalog.PersistCustom,
		OnCommit: func(models.WorkoutSession, int) {
			m.WorkoutCommitted()
		},
		OnHistoryChange: m.HistoryChanged,
	}, log)
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}
	m.HistoryChanged(len(tracker.History()))

	var limits *workout.SetLimits
	if cfg.Validation.EnforceSetRanges {
		limits = &workout.DefaultSetLimits
	}

	// Create server
	alphaProvider := alpha.NewProvider(tracker, time.Local, log)
	srv := server.New(tracker, alphaProvider, m, limits, cfg.Auth.APIKey, log)
	srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcp.New(mcp.NewLocal(tracker), Version, log)))

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
