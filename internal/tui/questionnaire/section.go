package questionnaire

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/tui/components"
	"github.com/druarnfield/mindcheck/internal/wizard"
)

// submitRequestedMsg asks the top-level model to start a submission.
type submitRequestedMsg struct{}

// SectionModel shows the active questionnaire section and turns key presses
// into controller calls.
type SectionModel struct {
	styles  components.Styles
	ctrl    *wizard.Controller
	surf    *surface
	bar     progress.Model
	spinner spinner.Model
	help    HelpPanel

	section int
	rows    []row
	cursor  int
	inputs  map[*form.Field]textinput.Model

	width  int
	height int
}

// NewSectionModel creates the section screen for ctrl, which must render
// into surf.
func NewSectionModel(styles components.Styles, ctrl *wizard.Controller, surf *surface) SectionModel {
	m := SectionModel{
		styles:  styles,
		ctrl:    ctrl,
		surf:    surf,
		bar:     components.NewProgressBar(styles, 40),
		spinner: components.NewSpinner(styles),
		help:    NewHelpPanel(styles),
		section: -1,
		inputs:  make(map[*form.Field]textinput.Model),
	}

	for _, s := range ctrl.Form().Sections {
		for _, f := range s.Fields {
			if f.Kind != form.KindText {
				continue
			}
			ti := textinput.New()
			ti.Placeholder = f.Placeholder
			ti.CharLimit = 200
			ti.Width = 40
			ti.SetValue(f.Value)
			m.inputs[f] = ti
		}
	}

	m.sync()
	return m
}

// Init starts the spinner.
func (m SectionModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// Update handles messages.
func (m SectionModel) Update(msg tea.Msg) (SectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(msg.Width-20, 60), 10)
		m.help = m.help.SetWidth(min(msg.Width-4, 70))
		return m, nil
	}

	// Cursor blink and other input messages.
	return m.updateInput(msg)
}

func (m SectionModel) handleKey(msg tea.KeyMsg) (SectionModel, tea.Cmd) {
	// An alert blocks until acknowledged.
	if m.surf.alert != "" {
		m.surf.alert = ""
		return m, nil
	}
	if m.surf.busy {
		return m, nil
	}

	cur := m.current()
	onText := cur.isText()

	switch msg.String() {
	case "up", "shift+tab":
		m.moveCursor(-1)
		return m, nil
	case "down", "tab":
		m.moveCursor(1)
		return m, nil
	case "k":
		if !onText {
			m.moveCursor(-1)
			return m, nil
		}
	case "j":
		if !onText {
			m.moveCursor(1)
			return m, nil
		}
	case " ", "x":
		if !onText {
			m.activate(cur)
			return m, nil
		}
	case "?":
		if !onText {
			m.help = m.help.SetVisible(!m.help.Visible())
			m.refreshHelp()
			return m, nil
		}
	case "right", "n":
		if !onText {
			return m.forward()
		}
	case "left", "p":
		if !onText {
			return m.back()
		}
	case "enter", "pgdown":
		return m.forward()
	case "esc", "pgup":
		return m.back()
	}

	if onText {
		return m.updateInput(msg)
	}
	return m, nil
}

// forward advances, or asks for submission on the last section.
func (m SectionModel) forward() (SectionModel, tea.Cmd) {
	if m.surf.controls.Submit {
		return m, func() tea.Msg { return submitRequestedMsg{} }
	}
	if err := m.ctrl.Advance(); err != nil {
		if i := firstUnanswered(m.rows); i >= 0 {
			m.cursor = i
			m.refreshFocus()
		}
		return m, nil
	}
	m.sync()
	return m, nil
}

func (m SectionModel) back() (SectionModel, tea.Cmd) {
	_ = m.ctrl.Retreat()
	m.sync()
	return m, nil
}

func (m SectionModel) updateInput(msg tea.Msg) (SectionModel, tea.Cmd) {
	cur := m.current()
	if !cur.isText() {
		return m, nil
	}
	ti, ok := m.inputs[cur.field]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[cur.field] = ti
	_ = cur.field.SetValue(ti.Value())
	return m, cmd
}

// activate answers the row under the cursor.
func (m *SectionModel) activate(r row) {
	if r.isHeader || r.field == nil {
		return
	}
	switch r.field.Kind {
	case form.KindRadio:
		_ = m.ctrl.Choose(r.field, r.field.Options[r.option].Value)
	case form.KindSelect:
		_ = r.field.SetValue(r.field.Options[r.option].Value)
	case form.KindCheckbox:
		_, _ = r.field.Toggle()
	}
}

// sync rebuilds the rows when the controller moved to another section and
// honours a pending scroll-to-top.
func (m *SectionModel) sync() {
	scrolled := m.surf.takeScroll()
	if m.surf.active != m.section || m.rows == nil {
		m.section = m.surf.active
		s, err := m.ctrl.Form().Section(m.section)
		if err != nil {
			m.rows = nil
			return
		}
		m.rows = buildRows(s)
		scrolled = true
	}
	if scrolled {
		m.cursor = firstFocusable(m.rows)
	}
	m.refreshFocus()
	m.refreshHelp()
}

func (m *SectionModel) moveCursor(dir int) {
	m.cursor = nextFocusable(m.rows, m.cursor, dir)
	m.refreshFocus()
	m.refreshHelp()
}

func (m *SectionModel) refreshFocus() {
	cur := m.current()
	for fld, ti := range m.inputs {
		if cur.isText() && cur.field == fld {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[fld] = ti
	}
}

func (m *SectionModel) refreshHelp() {
	cur := m.current()
	if cur.field == nil {
		m.help = m.help.SetText("")
		return
	}
	text := cur.field.Help
	if text == "" {
		text = cur.field.Label
	}
	m.help = m.help.SetText(text)
}

func (m SectionModel) current() row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{isHeader: true}
	}
	return m.rows[m.cursor]
}

// Cursor returns the focused row index (for testing).
func (m SectionModel) Cursor() int {
	return m.cursor
}

// View renders the section screen.
func (m SectionModel) View() string {
	var b strings.Builder
	f := m.ctrl.Form()

	if f.Title != "" {
		b.WriteString(m.styles.Title.Render(f.Title))
		b.WriteString("\n\n")
	}

	// Step counter and progress bar.
	b.WriteString(fmt.Sprintf("  Step %d of %d  %s  %d%%\n\n",
		m.surf.step, m.surf.total, m.bar.ViewAs(m.surf.percent/100), int(m.surf.percent)))

	s, err := f.Section(m.section)
	if err != nil {
		return b.String()
	}
	b.WriteString(m.styles.Subtitle.Render(s.Title))
	b.WriteString("\n")
	if s.Description != "" {
		b.WriteString(m.styles.Muted.Render(s.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, r := range m.rows {
		b.WriteString(m.renderRow(r, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")

	if m.surf.alert != "" {
		b.WriteString("\n")
		b.WriteString(renderAlert(m.styles, m.surf.alert, m.width-4))
		b.WriteString("\n")
	}

	if panel := m.help.View(); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.footer()))
	return b.String()
}

func (m SectionModel) renderRow(r row, isCursor bool) string {
	f := r.field
	if r.isHeader {
		label := f.Label
		if f.Required {
			label += " " + m.styles.Error.Render(m.styles.RequiredMark)
		}
		return "  " + m.styles.Body.Bold(true).Render(label)
	}

	var body string
	switch f.Kind {
	case form.KindRadio:
		o := f.Options[r.option]
		marker := m.styles.RadioOff
		if o.Checked {
			marker = m.styles.RadioOn
		}
		body = fmt.Sprintf("  %s %s", marker, o.Label)
		if o.Selected {
			body = m.styles.ChosenOption.Render(body)
		}
	case form.KindSelect:
		o := f.Options[r.option]
		if f.Value == o.Value {
			body = m.styles.ChosenOption.Render(fmt.Sprintf("  %s %s", m.styles.RadioOn, o.Label))
		} else {
			body = fmt.Sprintf("  %s %s", m.styles.RadioOff, o.Label)
		}
	case form.KindCheckbox:
		marker := m.styles.CheckboxOff
		if f.Checked {
			marker = m.styles.CheckboxOn
		}
		label := f.Label
		if f.Required {
			label += " " + m.styles.RequiredMark
		}
		body = fmt.Sprintf("%s %s", marker, label)
	case form.KindText:
		body = "  " + m.inputs[f].View()
	}

	lead := "  "
	if isCursor {
		lead = m.styles.SelectedItem.Render(">") + " "
	}
	return lead + body
}

func (m SectionModel) renderControls() string {
	var parts []string
	if m.surf.controls.Prev {
		parts = append(parts, m.styles.ButtonBusy.Render("< Back"))
	}
	if m.surf.controls.Next {
		parts = append(parts, m.styles.Button.Render("Next >"))
	}
	if m.surf.controls.Submit {
		if m.surf.busy {
			parts = append(parts, m.spinner.View()+" "+m.styles.ButtonBusy.Render(m.surf.submitLabel))
		} else {
			parts = append(parts, m.styles.Button.Render(m.surf.submitLabel))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m SectionModel) footer() string {
	keys := "  ↑/↓: move  space: choose  enter/→: "
	if m.surf.controls.Submit {
		keys += "submit"
	} else {
		keys += "next"
	}
	if m.surf.controls.Prev {
		keys += "  esc/←: back"
	}
	return keys + "  ?: help  ctrl+c: quit"
}
