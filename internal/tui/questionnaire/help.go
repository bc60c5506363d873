package questionnaire

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/druarnfield/mindcheck/internal/tui/components"
)

// HelpPanel renders a bordered "About this question" panel with word-wrapped text.
type HelpPanel struct {
	styles  components.Styles
	title   string
	text    string
	visible bool
	width   int
}

// NewHelpPanel creates a help panel (hidden by default).
func NewHelpPanel(styles components.Styles) HelpPanel {
	return HelpPanel{
		styles: styles,
		title:  "About this question",
		width:  60,
	}
}

// SetText returns a copy with updated text.
func (p HelpPanel) SetText(text string) HelpPanel {
	p.text = text
	return p
}

// SetVisible returns a copy with updated visibility.
func (p HelpPanel) SetVisible(v bool) HelpPanel {
	p.visible = v
	return p
}

// Visible reports whether the panel is switched on.
func (p HelpPanel) Visible() bool {
	return p.visible
}

// SetWidth returns a copy with updated width.
func (p HelpPanel) SetWidth(w int) HelpPanel {
	if w > 0 {
		p.width = w
	}
	return p
}

// View renders the panel. Returns empty string when not visible.
func (p HelpPanel) View() string {
	if !p.visible || p.text == "" {
		return ""
	}

	// Border and padding take four columns.
	innerWidth := p.width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}

	return p.styles.Panel.
		Width(p.width).
		Render(
			lipgloss.JoinVertical(lipgloss.Left,
				p.styles.Subtitle.Render(p.title),
				"",
				wordWrap(p.text, innerWidth),
			),
		)
}

// renderAlert draws a blocking message box.
func renderAlert(styles components.Styles, msg string, width int) string {
	if width <= 0 || width > 70 {
		width = 70
	}
	return styles.AlertPanel.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Error.Render(wordWrap(msg, width-4)),
			"",
			styles.Footer.Render("press any key to continue"),
		))
}

// wordWrap breaks text into lines that fit within the given width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]

	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
