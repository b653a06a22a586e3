package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) recordCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "record EXERCISE",
		Short: "Show the previous record and recent volume of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				rec := derive.RecordFor(args[0], t.History(), limit)
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), rec)
				}
				printRecord(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", derive.DefaultRecentLimit, "Number of sessions in the volume trend")
	return cmd
}

func printRecord(w io.Writer, rec derive.ExerciseRecord) {
	fmt.Fprintln(w, headerStyle.Render(rec.Exercise))
	if rec.Previous == nil {
		fmt.Fprintln(w, dimStyle.Render("No record yet."))
		return
	}
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}
	row("Max weight", kg(rec.Previous.MaxWeight))
	row("Sets", strconv.Itoa(rec.Previous.TotalSets))
	row("Volume", kg(rec.Previous.TotalVolume))

	vols := make([]string, len(rec.RecentVolumes))
	for i, v := range rec.RecentVolumes {
		vols[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	row("Recent volume", strings.Join(vols, " → "))
}
