package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/musclememo/internal/cli"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := cli.NewRootCmd(cli.OpenFromConfig(log), log).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
