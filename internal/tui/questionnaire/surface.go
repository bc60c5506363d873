package questionnaire

import "github.com/druarnfield/mindcheck/internal/wizard"

// surface is the TUI's wizard.Surface. The controller writes into it and
// the Bubble Tea model reads it when drawing. It is shared by pointer
// between model copies.
type surface struct {
	active   int
	total    int
	percent  float64
	step     int
	controls wizard.Controls

	// scrolled is set by ScrollToTop and consumed by the section view.
	scrolled bool

	alert       string
	submitLabel string
	busy        bool
	navigated   string
}

func (s *surface) ShowSection(active, total int) {
	s.active = active
	s.total = total
}

func (s *surface) SetProgress(percent float64) {
	s.percent = percent
}

func (s *surface) SetStepCounter(step, total int) {
	s.step = step
	s.total = total
}

func (s *surface) SetControls(c wizard.Controls) {
	s.controls = c
}

func (s *surface) ScrollToTop() {
	s.scrolled = true
}

func (s *surface) Alert(message string) {
	s.alert = message
}

func (s *surface) SetSubmitState(label string, busy bool) {
	s.submitLabel = label
	s.busy = busy
}

func (s *surface) Navigate(path string) {
	s.navigated = path
}

// takeNavigation returns and clears a pending navigation.
func (s *surface) takeNavigation() string {
	p := s.navigated
	s.navigated = ""
	return p
}

// takeScroll reports and clears a pending scroll-to-top.
func (s *surface) takeScroll() bool {
	v := s.scrolled
	s.scrolled = false
	return v
}
