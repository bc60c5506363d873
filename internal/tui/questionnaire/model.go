// Package questionnaire is the interactive terminal front end: a Bubble Tea
// model that implements wizard.Surface and moves from the question screens
// to the results screen.
package questionnaire

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/logging"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
	"github.com/druarnfield/mindcheck/internal/tui/components"
	"github.com/druarnfield/mindcheck/internal/wizard"
)

type screen int

const (
	screenQuestions screen = iota
	screenResults
)

// Model is the top-level tea.Model coordinating questions → results.
type Model struct {
	styles  components.Styles
	screen  screen
	section SectionModel
	results ResultsModel

	ctrl      *wizard.Controller
	surf      *surface
	submitter predict.Submitter
	store     session.Store
	bridge    *Bridge
	logger    *slog.Logger

	outcome  wizard.Outcome
	width    int
	height   int
	quitting bool
}

// New creates a Model showing the first section of f.
func New(f *form.Form, sub predict.Submitter, st session.Store, logger *slog.Logger, labels wizard.Labels) (Model, error) {
	if sub == nil {
		return Model{}, errors.New("questionnaire: nil submitter")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	styles := components.DefaultStyles()
	surf := &surface{}

	ctrl, err := wizard.New(f, surf, sub, st, wizard.WithLogger(logger), wizard.WithLabels(labels))
	if err != nil {
		return Model{}, err
	}

	return Model{
		styles:    styles,
		screen:    screenQuestions,
		section:   NewSectionModel(styles, ctrl, surf),
		results:   NewResultsModel(styles),
		ctrl:      ctrl,
		surf:      surf,
		submitter: sub,
		store:     st,
		logger:    logger,
	}, nil
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return m.section.Init()
}

// Update handles messages and delegates to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Propagate to children.
		m.section, _ = m.section.Update(msg)
		m.results, _ = m.results.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.bridge != nil {
				m.bridge.Cancel()
			}
			m.ctrl.Close()
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenQuestions:
		return m.updateQuestions(msg)
	case screenResults:
		return m.updateResults(msg)
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenQuestions:
		return m.section.View()
	case screenResults:
		return m.results.View()
	}
	return ""
}

func (m Model) updateQuestions(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitRequestedMsg:
		payload, err := m.ctrl.BeginSubmit()
		if err != nil {
			m.logger.Debug("submission not started", "error", err)
			return m, nil
		}
		m.bridge = NewBridge(m.submitter, payload)
		return m, tea.Batch(m.bridge.Start(), m.section.spinner.Tick)

	case SubmitDoneMsg:
		m.bridge = nil
		outcome, err := m.ctrl.CompleteSubmit(msg.Resp, msg.Err)
		m.outcome = outcome
		if err != nil {
			m.logger.Warn("submission did not complete", "outcome", outcome.String(), "error", err)
		}
		if m.surf.takeNavigation() == wizard.ResultsPath {
			return m.showResults()
		}
		return m, nil

	case spinner.TickMsg:
		// Only keep the spinner going while a request is pending.
		if !m.surf.busy || m.bridge == nil {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.section, cmd = m.section.Update(msg)
	return m, cmd
}

func (m Model) showResults() (tea.Model, tea.Cmd) {
	m.screen = screenResults
	m.ctrl.Close()

	if m.store == nil {
		m.results = m.results.SetError(errors.New("no session store configured"))
		return m, nil
	}
	raw, err := m.store.Get(session.ResultsKey)
	if err != nil {
		m.results = m.results.SetError(err)
		return m, nil
	}
	m.results = m.results.SetPayload(raw)
	return m, nil
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// Outcome returns how the last submission ended.
func (m Model) Outcome() wizard.Outcome {
	return m.outcome
}

// Controller exposes the wizard controller (for testing).
func (m Model) Controller() *wizard.Controller {
	return m.ctrl
}

// Screen returns the current screen (for testing).
func (m Model) Screen() screen {
	return m.screen
}
