package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) calendarCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show trained days of a month with body-part categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := a.now()
			if month != "" {
				parsed, err := derive.ParseMonth(month)
				if err != nil {
					return err
				}
				start = parsed
			}
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				cal := derive.Month(t.History(), start)
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), cal)
				}
				printCalendar(cmd.OutOrStdout(), cal)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")
	return cmd
}

func printCalendar(w io.Writer, cal derive.CalendarMonth) {
	fmt.Fprintln(w, headerStyle.Render(cal.Month))
	if len(cal.Days) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No workouts this month."))
		return
	}
	days := make([]string, 0, len(cal.Days))
	for d := range cal.Days {
		days = append(days, d)
	}
	slices.Sort(days)
	for _, d := range days {
		tags := make([]string, 0, len(cal.Days[d]))
		for _, c := range cal.Days[d] {
			tags = append(tags, categoryTag(c))
		}
		fmt.Fprintf(w, "%s  %s\n", dateStyle.Render(d), strings.Join(tags, " "))
	}
}
