package components

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewSpinner returns a spinner.Model pre-configured with mindcheck accent styling.
func NewSpinner(styles Styles) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)
	return s
}

// NewProgressBar returns the bar shown above each questionnaire section.
func NewProgressBar(styles Styles, width int) progress.Model {
	if width <= 0 {
		width = 40
	}
	return progress.New(
		progress.WithGradient(styles.GradientStart, styles.GradientEnd),
		progress.WithWidth(width),
	)
}
