package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/musclememo/internal/catalog"
	"github.com/claude/musclememo/internal/config"
	"github.com/claude/musclememo/internal/mcp"
	"github.com/claude/musclememo/internal/storage"
	"github.com/claude/musclememo/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "base URL of a MuscleMemo server (remote mode)")
	apiKey := flag.String("api-key", os.Getenv("MUSCLEMEMO_AUTH_API_KEY"), "API key for remote mode")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		if *apiKey == "" {
			fmt.Fprintln(os.Stderr, "Usage: musclememo-mcp -remote https://musclememo.tailnet.ts.net -api-key KEY")
			os.Exit(1)
		}
		ds = mcp.NewHTTPClient(*remote, *apiKey)
		log.Info("remote mode", "url", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		ctx := context.Background()
		slot, err := storage.Open(ctx, cfg.Storage, log)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer slot.Close()

		tracker, err := workout.New(ctx, catalog.New(nil), slot, nil, workout.Options{
			PersistCustom: cfg.Catalog.PersistCustom,
		}, log)
		if err != nil {
			log.Error("failed to load state", "error", err)
			os.Exit(1)
		}
		ds = mcp.NewLocal(tracker)
	}

	if err := mcpserver.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
