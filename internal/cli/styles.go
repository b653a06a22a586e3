package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/claude/musclememo/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Width(16).
			Foreground(lipgloss.Color("243"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	nameStyle = lipgloss.NewStyle().
			Width(28)
)

// categoryColors gives each body part its own calendar color.
var categoryColors = map[models.BodyPartCategory]lipgloss.Color{
	models.CategoryChest:     lipgloss.Color("203"),
	models.CategoryBack:      lipgloss.Color("33"),
	models.CategoryLegs:      lipgloss.Color("40"),
	models.CategoryShoulders: lipgloss.Color("214"),
	models.CategoryArms:      lipgloss.Color("135"),
	models.CategoryCore:      lipgloss.Color("220"),
	models.CategoryCardio:    lipgloss.Color("44"),
}

func categoryTag(c models.BodyPartCategory) string {
	return lipgloss.NewStyle().Foreground(categoryColors[c]).Render(string(c))
}

func kg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "kg"
}
