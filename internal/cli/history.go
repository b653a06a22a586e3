package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		search string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				sessions := derive.Search(t.History(), search)
				if limit > 0 && len(sessions) > limit {
					sessions = sessions[:limit]
				}
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), sessions)
				}
				printHistory(cmd.OutOrStdout(), sessions)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by exercise name, date or feedback text")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many workouts (0 = all)")
	return cmd
}

func printHistory(w io.Writer, sessions []models.WorkoutSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No workouts found."))
		return
	}
	for _, s := range sessions {
		names := make([]string, 0, len(s.Exercises))
		for _, ex := range s.Exercises {
			names = append(names, ex.Name)
		}
		fmt.Fprintf(w, "%s  %s  %d sets  %s\n",
			dateStyle.Render(s.Date.Local().Format("2006/01/02 15:04")),
			valueStyle.Render(kg(s.Volume())),
			s.SetCount(),
			strings.Join(names, ", "),
		)
		if s.AIFeedback != nil && *s.AIFeedback != "" {
			fmt.Fprintln(w, "  "+dimStyle.Render(firstLine(*s.AIFeedback)))
		}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
