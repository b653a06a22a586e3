package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored state to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				return writeSnapshot(cmd.OutOrStdout(), t.Snapshot(), format)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

// writeSnapshot encodes snap. YAML output goes through the JSON form so both
// formats share the persisted field names.
func writeSnapshot(w io.Writer, snap *models.Snapshot, format string) error {
	if format == "json" {
		return printJSON(w, snap)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}
