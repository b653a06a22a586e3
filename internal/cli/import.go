package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/claude/musclememo/internal/ingest"
	"github.com/claude/musclememo/internal/ingest/alpha"
	"github.com/claude/musclememo/internal/upload"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) importAlphaCmd() *cobra.Command {
	var remote, apiKey string
	cmd := &cobra.Command{
		Use:   "import-alpha FILE",
		Short: "Import an Alpha Progression CSV export into history",
		Long: "Parses an Alpha Progression CSV export and merges its sessions into history. Sessions imported before are skipped.\n" +
			"With --remote the file is sent to a running server instead of the local storage slot.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}

			if remote != "" {
				result, err := upload.NewClient(remote, apiKey).SendAlphaCSV(cmd.Context(), data)
				if err != nil {
					return err
				}
				return a.printImport(cmd, result)
			}

			return a.withTracker(cmd, func(t *workout.Tracker) error {
				result, err := alpha.NewProvider(t, time.Local, a.log).Ingest(cmd.Context(), bytes.NewReader(data))
				if err != nil {
					return err
				}
				return a.printImport(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "Base URL of a MuscleMemo server to upload to")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("MUSCLEMEMO_AUTH_API_KEY"), "API key for --remote")
	return cmd
}

func (a *app) printImport(cmd *cobra.Command, result *ingest.Result) error {
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), result)
	}
	w := cmd.OutOrStdout()
	row := func(label string, n int) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(fmt.Sprint(n)))
	}
	row("Sessions", result.SessionsReceived)
	row("Added", result.SessionsAdded)
	row("Skipped", result.SessionsSkipped)
	row("Exercises", result.ExercisesParsed)
	row("Sets", result.SetsParsed)
	return nil
}
