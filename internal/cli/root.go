// Package cli implements the musclememo-cli commands. Every command works
// directly on the configured storage slot.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

// Opener loads the tracker for one command run. The closer releases the
// storage slot.
type Opener func(ctx context.Context, configPath string) (*workout.Tracker, io.Closer, error)

type app struct {
	open       Opener
	now        func() time.Time
	log        *slog.Logger
	configPath string
	jsonOut    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(open Opener, log *slog.Logger) *cobra.Command {
	a := &app{open: open, now: time.Now, log: log}

	root := &cobra.Command{
		Use:           "musclememo-cli",
		Short:         "Inspect and maintain the MuscleMemo workout log",
		Long:          "Reads statistics, history, calendar and records from the workout log, and imports or exports it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "Path to config file")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print JSON instead of formatted text")

	root.AddCommand(
		a.statsCmd(),
		a.historyCmd(),
		a.calendarCmd(),
		a.recordCmd(),
		a.exercisesCmd(),
		a.exportCmd(),
		a.importAlphaCmd(),
	)
	return root
}

// withTracker opens the tracker, runs fn and closes the slot.
func (a *app) withTracker(cmd *cobra.Command, fn func(*workout.Tracker) error) error {
	tracker, closer, err := a.open(cmd.Context(), a.configPath)
	if err != nil {
		return fmt.Errorf("opening workout log: %w", err)
	}
	defer closer.Close()
	return fn(tracker)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
