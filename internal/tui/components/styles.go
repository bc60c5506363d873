package components

import "github.com/charmbracelet/lipgloss"

// Styles holds all shared Lipgloss styles used across TUI screens.
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Body           lipgloss.Style
	Muted          lipgloss.Style
	Success        lipgloss.Style
	Error          lipgloss.Style
	Warning        lipgloss.Style
	Panel          lipgloss.Style
	AlertPanel     lipgloss.Style
	SelectedItem   lipgloss.Style
	UnselectedItem lipgloss.Style
	ChosenOption   lipgloss.Style
	Button         lipgloss.Style
	ButtonBusy     lipgloss.Style
	CheckboxOn     string
	CheckboxOff    string
	RadioOn        string
	RadioOff       string
	RequiredMark   string
	Footer         lipgloss.Style
	AccentColor    lipgloss.AdaptiveColor
	GradientStart  string
	GradientEnd    string
}

// DefaultStyles returns a Styles populated with the mindcheck palette.
// Uses AdaptiveColor to work in both light and dark terminals.
func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	teal := lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	success := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#00D97E"}
	errColor := lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#F87171"}
	warn := lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FFC107"}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(teal),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Success: lipgloss.NewStyle().
			Foreground(success),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(errColor),

		Warning: lipgloss.NewStyle().
			Foreground(warn),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		AlertPanel: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(errColor).
			Padding(0, 1),

		SelectedItem: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		UnselectedItem: lipgloss.NewStyle().
			Foreground(muted),

		ChosenOption: lipgloss.NewStyle().
			Foreground(teal).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 2),

		ButtonBusy: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		CheckboxOn:   "[x]",
		CheckboxOff:  "[ ]",
		RadioOn:      "(•)",
		RadioOff:     "( )",
		RequiredMark: "*",

		Footer: lipgloss.NewStyle().
			Foreground(muted),

		AccentColor:   accent,
		GradientStart: "#4F46E5",
		GradientEnd:   "#2DD4BF",
	}
}

// RiskStyle colours text with the hex colour the prediction service sends,
// falling back to the accent colour.
func (s Styles) RiskStyle(hex string) lipgloss.Style {
	if len(hex) != 7 || hex[0] != '#' {
		return s.Title
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex))
}
