// Package feedback turns a finished workout into short coaching text from a
// generative model, falling back to canned text on any failure.
package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/musclememo/internal/models"
)

// SystemPrompt frames the model as a personal trainer.
const SystemPrompt = `# Role
You are an experienced personal trainer. Analyse the user's strength training
log and give constructive, specific advice.

# Do
- Analyse the numbers objectively.
- State the change from the previous session clearly (values and percentage).
- Suggest something concrete for the next session.
- Encourage the user.
- Warn about injury risk, for example a sudden jump in load.

# Don't
- Give medical diagnosis or treatment advice.
- Recommend excessive load increases.
- Give vague advice without grounds.

# Style
Friendly but professional. At most one or two emoji. Under 300 characters.
Reply in Japanese. Structure: assessment against last time, suggestion for
next time, encouragement.`

const promptDateLayout = "2006/1/2"

// BuildPrompt renders the finished session and a comparison with the most
// recent prior session (history[0]).
func BuildPrompt(session models.WorkoutSession, history []models.WorkoutSession) string {
	current := session.Volume()

	var b strings.Builder
	b.WriteString("[Today's Workout]\n")
	fmt.Fprintf(&b, "Date: %s\n", session.Date.Local().Format(promptDateLayout))
	fmt.Fprintf(&b, "Total Volume: %skg\n\n", num(current))

	b.WriteString("Exercises:\n")
	for _, ex := range session.Exercises {
		sets := make([]string, len(ex.Sets))
		for i, s := range ex.Sets {
			sets[i] = fmt.Sprintf("Set %d: %skg x %d", i+1, num(s.Weight), s.Reps)
		}
		fmt.Fprintf(&b, "- %s: %s\n", ex.Name, strings.Join(sets, ", "))
	}

	b.WriteString("\n[Comparison with Previous]\n")
	b.WriteString(comparison(current, history))
	return b.String()
}

func comparison(current float64, history []models.WorkoutSession) string {
	if len(history) == 0 {
		return "First recorded session.\n"
	}
	last := history[0]
	previous := last.Volume()
	diff := current - previous

	percent := "0"
	if previous > 0 {
		percent = strconv.FormatFloat(diff/previous*100, 'f', 1, 64)
	}
	sign := ""
	if diff > 0 {
		sign = "+"
	}
	return fmt.Sprintf("Previous Date: %s\nPrevious Volume: %skg\nChange: %s%s%%\n",
		last.Date.Local().Format(promptDateLayout), num(previous), sign, percent)
}

// num formats without trailing zeros: 20 not 20.000000, 12.5 stays 12.5.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
