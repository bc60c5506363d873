// Package wizard drives a questionnaire one section at a time: it owns the
// current section index, validates before moving forward, and runs the final
// submission against a predict.Submitter. Rendering goes through a Surface so
// the same controller serves the TUI and the plain-text submit command.
//
// A Controller is not safe for concurrent use. Call it from the goroutine
// that owns the Surface; the TUI does the network call elsewhere and hands
// the outcome back with CompleteSubmit.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/logging"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
)

// ResultsPath is the view shown after a successful submission.
const ResultsPath = "/results"

// User-facing messages.
const (
	MsgIncomplete = "Please answer all required questions before continuing."
	MsgGeneric    = "An error occurred. Please try again."
	MsgStoreFail  = "Your results could not be saved. Please try again."
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("wizard: controller closed")

	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("wizard: submission already in progress")

	// ErrNotLastSection is returned when submitting before the final section.
	ErrNotLastSection = errors.New("wizard: submit is only available on the last section")
)

// RejectedError is a success=false answer from the prediction service.
type RejectedError struct {
	Message string
	Status  int
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "prediction rejected"
	}
	return "prediction rejected: " + e.Message
}

// Outcome classifies how a submission ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAccepted
	OutcomeRejected
	OutcomeTransportFailure
	OutcomeStoreFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailure:
		return "transport-failure"
	case OutcomeStoreFailure:
		return "store-failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Labels are the submit control captions.
type Labels struct {
	Submit string
	Busy   string
}

// DefaultLabels returns the standard captions.
func DefaultLabels() Labels {
	return Labels{Submit: "Get My Results", Busy: "Analyzing..."}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLabels overrides DefaultLabels.
func WithLabels(l Labels) Option {
	return func(c *Controller) {
		if l.Submit != "" {
			c.labels.Submit = l.Submit
		}
		if l.Busy != "" {
			c.labels.Busy = l.Busy
		}
	}
}

// Controller is the questionnaire state machine.
type Controller struct {
	form      *form.Form
	surface   Surface
	submitter predict.Submitter
	store     session.Store
	logger    *slog.Logger
	labels    Labels

	current  int
	inFlight bool
	closed   bool
}

// New builds a controller positioned on section 0 and renders it.
func New(f *form.Form, s Surface, sub predict.Submitter, st session.Store, opts ...Option) (*Controller, error) {
	if f == nil || f.Len() == 0 {
		return nil, errors.New("wizard: form has no sections")
	}
	if s == nil {
		return nil, errors.New("wizard: nil surface")
	}

	c := &Controller{
		form:      f,
		surface:   s,
		submitter: sub,
		store:     st,
		logger:    slog.New(logging.NopHandler{}),
		labels:    DefaultLabels(),
	}
	for _, o := range opts {
		o(c)
	}

	if err := c.Render(0); err != nil {
		return nil, err
	}
	c.surface.SetSubmitState(c.labels.Submit, false)
	return c, nil
}

// Form returns the form being edited.
func (c *Controller) Form() *form.Form { return c.form }

// Current returns the active section index.
func (c *Controller) Current() int { return c.current }

// Total returns the number of sections.
func (c *Controller) Total() int { return c.form.Len() }

// IsLast reports whether the active section is the final one.
func (c *Controller) IsLast() bool { return c.current == c.form.Len()-1 }

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool { return c.inFlight }

// Labels returns the submit control captions in use.
func (c *Controller) Labels() Labels { return c.labels }

// Close tears the controller down. Later calls fail with ErrClosed.
func (c *Controller) Close() {
	c.closed = true
}

// Render shows section i and updates progress, counter and controls.
func (c *Controller) Render(i int) error {
	if c.closed {
		return ErrClosed
	}
	n := c.form.Len()
	if i < 0 || i >= n {
		return fmt.Errorf("wizard: section %d out of range [0, %d)", i, n)
	}

	c.current = i
	c.surface.ShowSection(i, n)
	c.surface.SetProgress(float64(i+1) / float64(n) * 100)
	c.surface.SetStepCounter(i+1, n)

	last := i == n-1
	c.surface.SetControls(Controls{
		Prev:   i > 0,
		Next:   !last,
		Submit: last,
	})
	c.surface.ScrollToTop()
	return nil
}

// Validate checks the required fields of section i.
func (c *Controller) Validate(i int) error {
	if c.closed {
		return ErrClosed
	}
	return c.form.Validate(i)
}

// Advance moves forward one section if the current one is complete. On a
// validation failure the user is alerted and nothing changes.
func (c *Controller) Advance() error {
	if c.closed {
		return ErrClosed
	}
	if err := c.form.Validate(c.current); err != nil {
		c.logger.Debug("section incomplete", "section", c.current, "error", err)
		c.surface.Alert(MsgIncomplete)
		return err
	}
	next := c.current
	if next+1 < c.form.Len() {
		next++
	}
	return c.Render(next)
}

// Retreat moves back one section. No validation.
func (c *Controller) Retreat() error {
	if c.closed {
		return ErrClosed
	}
	prev := c.current
	if prev > 0 {
		prev--
	}
	return c.Render(prev)
}

// SelectChoice marks a radio option as chosen.
func (c *Controller) SelectChoice(field, value string) error {
	if c.closed {
		return ErrClosed
	}
	return c.form.SelectChoice(field, value)
}

// Choose marks value of the radio field fld as chosen. Unlike SelectChoice it
// reaches fields that share a name with an earlier one.
func (c *Controller) Choose(fld *form.Field, value string) error {
	if c.closed {
		return ErrClosed
	}
	return c.form.Choose(fld, value)
}

// BeginSubmit validates the final section, marks the submit control busy and
// returns the serialized answers. The caller sends them and reports back
// through CompleteSubmit.
func (c *Controller) BeginSubmit() (map[string]string, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.inFlight {
		return nil, ErrSubmitInFlight
	}
	if !c.IsLast() {
		return nil, ErrNotLastSection
	}
	if err := c.form.Validate(c.current); err != nil {
		c.surface.Alert(MsgIncomplete)
		return nil, err
	}

	c.inFlight = true
	c.surface.SetSubmitState(c.labels.Busy, true)

	payload := c.form.Serialize()
	c.logger.Info("submitting questionnaire", "fields", len(payload))
	return payload, nil
}

// CompleteSubmit applies the result of the network call. A successful
// response is stored under session.ResultsKey and the surface navigates to
// ResultsPath; anything else re-enables the submit control and alerts.
func (c *Controller) CompleteSubmit(resp *predict.Response, err error) (Outcome, error) {
	if c.closed {
		return OutcomeNone, ErrClosed
	}
	if !c.inFlight {
		return OutcomeNone, errors.New("wizard: no submission in progress")
	}
	c.inFlight = false

	switch {
	case err != nil:
		c.logger.Error("submission failed", "error", err)
		c.fail(MsgGeneric)
		return OutcomeTransportFailure, err

	case resp == nil:
		err = &predict.TransportError{Op: "decoding response", Err: errors.New("empty response")}
		c.logger.Error("submission failed", "error", err)
		c.fail(MsgGeneric)
		return OutcomeTransportFailure, err

	case !resp.Success:
		msg := resp.Error
		if msg == "" {
			msg = MsgGeneric
		}
		c.logger.Warn("submission rejected", "status", resp.Status, "error", resp.Error)
		c.fail(msg)
		return OutcomeRejected, &RejectedError{Message: resp.Error, Status: resp.Status}
	}

	if c.store != nil {
		if err := c.store.Put(session.ResultsKey, resp.Raw); err != nil {
			c.logger.Error("storing results", "error", err)
			c.fail(MsgStoreFail)
			return OutcomeStoreFailure, fmt.Errorf("storing results: %w", err)
		}
	}

	c.logger.Info("submission accepted")
	c.surface.Navigate(ResultsPath)
	return OutcomeAccepted, nil
}

// Submit runs BeginSubmit, the prediction call and CompleteSubmit in one go.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	payload, err := c.BeginSubmit()
	if err != nil {
		return OutcomeNone, err
	}
	if c.submitter == nil {
		return c.CompleteSubmit(nil, errors.New("wizard: no submitter configured"))
	}
	resp, err := c.submitter.Predict(ctx, payload)
	return c.CompleteSubmit(resp, err)
}

func (c *Controller) fail(msg string) {
	c.surface.SetSubmitState(c.labels.Submit, false)
	c.surface.Alert(msg)
}
