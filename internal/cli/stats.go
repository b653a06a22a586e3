package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show workout statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				stats := derive.ComputeStats(t.History(), a.now())
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), stats)
				}
				printStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
}

func printStats(w io.Writer, s derive.Stats) {
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}
	fmt.Fprintln(w, headerStyle.Render("Overview"))
	row("Workouts", strconv.Itoa(s.TotalWorkouts))
	row("Total volume", kg(s.TotalVolume))
	row("Total sets", strconv.Itoa(s.TotalSets))
	row("Exercises", strconv.Itoa(s.TotalExercises))
	row("Avg volume", kg(s.AverageVolume))
	row("Streak", fmt.Sprintf("%d days", s.Streak))
	row("Per week", strconv.FormatFloat(s.WeeklyAverage, 'f', -1, 64))

	if len(s.TopExercises) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Most frequent"))
		for _, e := range s.TopExercises {
			fmt.Fprintln(w, "  "+nameStyle.Render(e.Name)+valueStyle.Render(strconv.Itoa(e.Count)))
		}
	}
	if len(s.PersonalRecords) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Personal records"))
		for _, pr := range s.PersonalRecords {
			fmt.Fprintln(w, "  "+nameStyle.Render(pr.Name)+valueStyle.Render(kg(pr.Weight)))
		}
	}
}
