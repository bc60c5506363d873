package questionnaire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/tui/components"
)

// ResultsModel shows a stored prediction.
type ResultsModel struct {
	styles components.Styles
	resp   *predict.Response
	err    error
	width  int
	height int
}

// NewResultsModel creates a results view.
func NewResultsModel(styles components.Styles) ResultsModel {
	return ResultsModel{styles: styles}
}

// SetPayload decodes the stored response body.
func (m ResultsModel) SetPayload(raw json.RawMessage) ResultsModel {
	resp, err := predict.Decode(raw)
	m.resp = resp
	m.err = err
	return m
}

// SetError records why results could not be shown.
func (m ResultsModel) SetError(err error) ResultsModel {
	m.err = err
	return m
}

// Response returns the decoded response, if any.
func (m ResultsModel) Response() *predict.Response {
	return m.resp
}

// Init satisfies tea.Model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the results screen.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderBanner(m.styles))
	b.WriteString("\n\n")
	b.WriteString(RenderResults(m.styles, m.resp, m.err, m.width))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("  Press enter or q to exit"))
	return b.String()
}

// RenderResults formats a prediction response. The submit command prints
// the same text without the TUI.
func RenderResults(s components.Styles, resp *predict.Response, err error, width int) string {
	var b strings.Builder

	if err != nil {
		b.WriteString(s.Error.Render("Results unavailable"))
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(fmt.Sprintf("  Error: %v", err)))
		b.WriteString("\n")
		return b.String()
	}
	if resp == nil {
		b.WriteString(s.Warning.Render("No results yet. Complete the questionnaire first."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.Success.Render("Your Results"))
	b.WriteString("\n\n")

	r := resp.Result
	if r.RiskCategory == "" && len(r.Recommendations) == 0 && r.RiskPercentage == 0 {
		// Unknown payload shape: show it as-is.
		var pretty bytes.Buffer
		if json.Indent(&pretty, resp.Raw, "  ", "  ") == nil {
			b.WriteString("  ")
			b.WriteString(pretty.String())
		} else {
			b.WriteString("  " + string(resp.Raw))
		}
		b.WriteString("\n")
		return b.String()
	}

	riskStyle := s.RiskStyle(r.RiskColor)
	b.WriteString(fmt.Sprintf("  Estimated risk: %s\n", riskStyle.Render(fmt.Sprintf("%.1f%%", r.RiskPercentage))))
	if r.RiskCategory != "" {
		b.WriteString(fmt.Sprintf("  Category:       %s\n", riskStyle.Render(r.RiskCategory)))
	}

	if len(r.Recommendations) > 0 {
		if width <= 0 || width > 74 {
			width = 74
		}
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render("Recommendations"))
		b.WriteString("\n\n")
		for _, rec := range r.Recommendations {
			title := rec.Title
			if rec.Icon != "" {
				title = rec.Icon + "  " + title
			}
			b.WriteString("  " + s.Body.Bold(true).Render(title))
			b.WriteString("\n")
			for _, line := range strings.Split(wordWrap(rec.Text, width-6), "\n") {
				b.WriteString("     " + s.Muted.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(s.Warning.Render("  This is a screening aid, not a diagnosis. Talk to a healthcare professional about your results."))
	b.WriteString("\n")
	return b.String()
}
