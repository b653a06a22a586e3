package cli

import (
	"fmt"

	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
	"github.com/spf13/cobra"
)

func (a *app) exercisesCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the exercise catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(t *workout.Tracker) error {
				exercises := t.Exercises()
				if category != "" {
					exercises = t.ExercisesIn(models.BodyPartCategory(category))
				}
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), exercises)
				}
				w := cmd.OutOrStdout()
				for _, ex := range exercises {
					fmt.Fprintf(w, "%s%s  %s\n", nameStyle.Render(ex.Name), ex.Category, dimStyle.Render(ex.ID))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list one body-part bucket (chest, back, legs, ...)")
	return cmd
}
