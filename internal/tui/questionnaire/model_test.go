package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/logging"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
	"github.com/druarnfield/mindcheck/internal/tui/components"
	"github.com/druarnfield/mindcheck/internal/wizard"
)

// --- helpers ---

type stubSubmitter struct {
	body  string
	err   error
	block bool
}

func (s *stubSubmitter) Predict(ctx context.Context, _ map[string]string) (*predict.Response, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return predict.Decode([]byte(s.body))
}

func testForm() *form.Form {
	return &form.Form{Title: "Test Questionnaire", Sections: []*form.Section{
		{Index: 0, Title: "About", Fields: []*form.Field{
			{Name: "smoker", Label: "Do you smoke?", Kind: form.KindRadio, Required: true,
				Options: []form.Option{{Value: "yes", Label: "Yes"}, {Value: "no", Label: "No"}}},
		}},
		{Index: 1, Title: "Finish", Fields: []*form.Field{
			{Name: "notes", Label: "Notes", Kind: form.KindText},
			{Name: "consent", Label: "I agree", Kind: form.KindCheckbox, Required: true},
		}},
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, sub predict.Submitter, st session.Store) Model {
	t.Helper()
	return newModelFor(t, testForm(), sub, st)
}

func newModelFor(t *testing.T, f *form.Form, sub predict.Submitter, st session.Store) Model {
	t.Helper()
	m, err := New(f, sub, st, logging.Nop(), wizard.DefaultLabels())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// answerAll fills every section through the keyboard and stops on the last.
func answerAll(t *testing.T, m Model) Model {
	t.Helper()
	// Section 0: cursor starts on "Yes"; move to "No" and choose it.
	m, _ = send(m, key("down"))
	m, _ = send(m, key(" "))
	m, _ = send(m, key("enter"))
	if m.Controller().Current() != 1 {
		t.Fatalf("expected section 1, got %d (alert %q)", m.Controller().Current(), m.surf.alert)
	}
	// Section 1: cursor on notes input; type, then move to consent and tick it.
	m, _ = send(m, key("hi"))
	m, _ = send(m, key("down"))
	m, _ = send(m, key(" "))
	return m
}

// submit presses enter on the last section and delivers the bridge result.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := send(m, key("enter"))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg := cmd()
	if _, ok := msg.(submitRequestedMsg); !ok {
		t.Fatalf("expected submitRequestedMsg, got %T", msg)
	}
	m, _ = send(m, msg)
	if m.bridge == nil {
		t.Fatalf("submission did not start (alert %q)", m.surf.alert)
	}
	if !m.surf.busy || m.surf.submitLabel != wizard.DefaultLabels().Busy {
		t.Errorf("submit control = %q busy=%v during request", m.surf.submitLabel, m.surf.busy)
	}
	done := m.bridge.NextMsg()()
	m, _ = send(m, done)
	return m
}

// --- rows ---

func TestBuildRows(t *testing.T) {
	f := testForm()
	rows := buildRows(f.Sections[1])
	// notes header, notes input, consent checkbox
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if !rows[0].isHeader || !rows[1].isText() || rows[2].field.Name != "consent" {
		t.Errorf("unexpected layout %+v", rows)
	}
	if got := firstFocusable(rows); got != 1 {
		t.Errorf("firstFocusable = %d, want 1", got)
	}
}

func TestNextFocusable_SkipsHeadersAndWraps(t *testing.T) {
	rows := buildRows(testForm().Sections[0]) // header, yes, no
	if got := nextFocusable(rows, 2, 1); got != 1 {
		t.Errorf("wrap forward = %d, want 1", got)
	}
	if got := nextFocusable(rows, 1, -1); got != 2 {
		t.Errorf("wrap backward = %d, want 2", got)
	}
	if got := nextFocusable(nil, 0, 1); got != 0 {
		t.Errorf("empty = %d", got)
	}
}

func TestFirstUnanswered(t *testing.T) {
	f := testForm()
	rows := buildRows(f.Sections[1])
	if got := firstUnanswered(rows); got != 2 {
		t.Errorf("firstUnanswered = %d, want consent row 2", got)
	}
	_ = f.SetChecked("consent", true)
	if got := firstUnanswered(rows); got != -1 {
		t.Errorf("firstUnanswered = %d, want -1", got)
	}
}

// --- model ---

func TestNew_ShowsFirstSection(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	if m.Screen() != screenQuestions {
		t.Fatalf("screen = %v", m.Screen())
	}
	out := m.View()
	for _, want := range []string{"Test Questionnaire", "Step 1 of 2", "About", "Do you smoke?", "Next"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "Back") {
		t.Error("Back should be hidden on the first section")
	}
}

func TestNew_NilSubmitter(t *testing.T) {
	if _, err := New(testForm(), nil, nil, nil, wizard.DefaultLabels()); err == nil {
		t.Error("expected error")
	}
}

func TestAdvance_BlockedShowsAlert(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())

	m, _ = send(m, key("enter"))
	if m.Controller().Current() != 0 {
		t.Fatal("should not advance without an answer")
	}
	if !strings.Contains(m.View(), wizard.MsgIncomplete) {
		t.Error("alert not rendered")
	}
	if got := m.section.Cursor(); got != 1 {
		t.Errorf("cursor = %d, want first unanswered option", got)
	}

	// Any key dismisses; it does not also act.
	m, _ = send(m, key(" "))
	if m.surf.alert != "" {
		t.Error("alert should be dismissed")
	}
	if _, ok := m.Controller().Form().Sections[0].Fields[0].CheckedOption(); ok {
		t.Error("dismissing key should not select an option")
	}
}

func TestChoiceSelection_HighlightsOption(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m, _ = send(m, key(" ")) // Yes
	m, _ = send(m, key("j"))
	m, _ = send(m, key(" ")) // No

	opts := m.Controller().Form().Sections[0].Fields[0].Options
	if opts[0].Selected || !opts[1].Selected || !opts[1].Checked {
		t.Errorf("options = %+v", opts)
	}
}

func TestNavigation_BackAndForth(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m = answerAll(t, m)

	out := m.View()
	if !strings.Contains(out, "Step 2 of 2") || !strings.Contains(out, "Get My Results") || !strings.Contains(out, "Back") {
		t.Errorf("last section view unexpected:\n%s", out)
	}
	if strings.Contains(out, "Next >") {
		t.Error("Next should be hidden on the last section")
	}

	m, _ = send(m, key("esc"))
	if m.Controller().Current() != 0 {
		t.Errorf("current = %d after esc", m.Controller().Current())
	}
	m, _ = send(m, key("esc"))
	if m.Controller().Current() != 0 {
		t.Error("retreat below zero")
	}
}

func TestNavigation_ArrowAndLetterKeys(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m, _ = send(m, key("j"))
	m, _ = send(m, key(" "))

	// Section 1 opens on the notes input, so step onto the checkbox before
	// going back.
	steps := []struct {
		keys []string
		want int
	}{
		{[]string{"n"}, 1},
		{[]string{"down", "p"}, 0},
		{[]string{"right"}, 1},
		{[]string{"down", "left"}, 0},
	}
	for _, s := range steps {
		for _, k := range s.keys {
			m, _ = send(m, key(k))
		}
		if got := m.Controller().Current(); got != s.want {
			t.Fatalf("after %v current = %d, want %d", s.keys, got, s.want)
		}
	}
}

func TestNavigation_LetterKeysTypeIntoText(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m, _ = send(m, key(" "))
	m, _ = send(m, key("n"))
	if m.Controller().Current() != 1 {
		t.Fatalf("current = %d, want 1", m.Controller().Current())
	}

	// Cursor rests on the notes input; n and p are text there.
	m, _ = send(m, key("n"))
	m, _ = send(m, key("p"))
	if m.Controller().Current() != 1 {
		t.Errorf("letter keys on a text row should not navigate")
	}
	if got := m.Controller().Form().Serialize()["notes"]; got != "np" {
		t.Errorf("notes = %q, want %q", got, "np")
	}
}

func TestSharedNames_EditTheFocusedField(t *testing.T) {
	f := &form.Form{Sections: []*form.Section{{Title: "Symptoms", Fields: []*form.Field{
		{Name: "symptom", Label: "Headaches", Kind: form.KindCheckbox, CheckedValue: "headache"},
		{Name: "symptom", Label: "Memory loss", Kind: form.KindCheckbox, CheckedValue: "memory"},
		{Name: "x", Label: "First", Kind: form.KindText},
		{Name: "x", Label: "Second", Kind: form.KindText, Required: true},
	}}}}
	m := newModelFor(t, f, &stubSubmitter{}, session.NewMemory())

	m, _ = send(m, key("down")) // Memory loss
	m, _ = send(m, key(" "))
	m, _ = send(m, key("down")) // first x
	m, _ = send(m, key("down")) // second x
	m, _ = send(m, key("abc"))

	fields := f.Sections[0].Fields
	if fields[0].Checked || !fields[1].Checked {
		t.Errorf("checked = %v, %v; want false, true", fields[0].Checked, fields[1].Checked)
	}
	if fields[2].Value != "" || fields[3].Value != "abc" {
		t.Errorf("values = %q, %q; want \"\", \"abc\"", fields[2].Value, fields[3].Value)
	}

	got := f.Serialize()
	if got["symptom"] != "memory" || got["x"] != "abc" {
		t.Errorf("Serialize = %v", got)
	}
	if err := f.Validate(0); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTextInput_WritesForm(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m = answerAll(t, m)
	if got := m.Controller().Form().Serialize()["notes"]; got != "hi" {
		t.Errorf("notes = %q, want %q", got, "hi")
	}
}

func TestSubmit_Success(t *testing.T) {
	defer goleak.VerifyNone(t)

	body := `{"success": true, "risk_percentage": 12.5, "risk_category": "Low Risk", "risk_color": "#00d97e", "recommendations": [{"icon": "", "title": "Quality Sleep", "text": "Prioritize 7-8 hours of sleep."}]}`
	st := session.NewMemory()
	m := newModel(t, &stubSubmitter{body: body}, st)
	m = answerAll(t, m)
	m = submit(t, m)

	if m.Outcome() != wizard.OutcomeAccepted {
		t.Fatalf("outcome = %v (alert %q)", m.Outcome(), m.surf.alert)
	}
	if m.Screen() != screenResults {
		t.Fatalf("screen = %v, want results", m.Screen())
	}
	stored, err := st.Get(session.ResultsKey)
	if err != nil || string(stored) != body {
		t.Errorf("stored = %s, %v", stored, err)
	}

	out := m.View()
	for _, want := range []string{"12.5%", "Low Risk", "Quality Sleep"} {
		if !strings.Contains(out, want) {
			t.Errorf("results view missing %q", want)
		}
	}

	_, cmd := send(m, key("q"))
	if cmd == nil {
		t.Error("q should quit on results screen")
	}
}

func TestSubmit_Rejected(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newModel(t, &stubSubmitter{body: `{"success": false, "error": "bad input"}`}, session.NewMemory())
	m = answerAll(t, m)
	m = submit(t, m)

	if m.Outcome() != wizard.OutcomeRejected || m.Screen() != screenQuestions {
		t.Fatalf("outcome = %v screen = %v", m.Outcome(), m.Screen())
	}
	if m.surf.busy || m.surf.submitLabel != wizard.DefaultLabels().Submit {
		t.Errorf("submit control = %q busy=%v", m.surf.submitLabel, m.surf.busy)
	}
	if !strings.Contains(m.View(), "bad input") {
		t.Error("server message not shown")
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	sub := &stubSubmitter{err: &predict.TransportError{Op: "sending request", Err: errors.New("connection reset by peer")}}
	m := newModel(t, sub, session.NewMemory())
	m = answerAll(t, m)
	m = submit(t, m)

	if m.Outcome() != wizard.OutcomeTransportFailure {
		t.Fatalf("outcome = %v", m.Outcome())
	}
	if m.surf.busy {
		t.Error("submit control should be re-enabled")
	}
	if m.surf.alert != wizard.MsgGeneric {
		t.Errorf("alert = %q", m.surf.alert)
	}

	// Dismiss and retry succeeds.
	m, _ = send(m, key("x"))
	sub.err = nil
	sub.body = `{"success": true}`
	m = submit(t, m)
	if m.Screen() != screenResults {
		t.Errorf("retry screen = %v", m.Screen())
	}
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := newModel(t, &stubSubmitter{block: true}, session.NewMemory())
	m = answerAll(t, m)

	m, cmd := send(m, key("enter"))
	m, _ = send(m, cmd())
	if m.bridge == nil {
		t.Fatal("submission did not start")
	}

	m, cmd = send(m, key("enter"))
	if cmd != nil {
		t.Error("enter while busy should do nothing")
	}
	m, _ = send(m, key("esc"))
	if m.Controller().Current() != 1 {
		t.Error("esc while busy should not navigate")
	}

	bridge := m.bridge
	m, cmd = send(m, key("ctrl+c"))
	if cmd == nil || !m.quitting {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}

	// The cancelled request finishes and the channel closes.
	select {
	case <-drain(bridge):
	case <-time.After(2 * time.Second):
		t.Fatal("bridge goroutine did not exit after cancel")
	}
}

func drain(b *Bridge) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for range b.msgs {
		}
		close(done)
	}()
	return done
}

func TestBridge_DeliversResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBridge(&stubSubmitter{body: `{"success": true}`}, map[string]string{"a": "b"})
	msg := b.Start()()
	done, ok := msg.(SubmitDoneMsg)
	if !ok {
		t.Fatalf("got %T, want SubmitDoneMsg", msg)
	}
	if done.Err != nil || !done.Resp.Success {
		t.Errorf("done = %+v", done)
	}
	// Channel is closed afterwards and the request context released.
	if next := b.NextMsg()(); next != nil {
		t.Errorf("NextMsg after completion = %v", next)
	}
	if b.ctx.Err() == nil {
		t.Error("context should be cancelled once the request is done")
	}
}

// --- results rendering ---

func TestRenderResults(t *testing.T) {
	s := components.DefaultStyles()

	resp, _ := predict.Decode([]byte(`{"success": true, "result": {"score": 0.8}}`))
	out := RenderResults(s, resp, nil, 80)
	if !strings.Contains(out, `"score": 0.8`) {
		t.Errorf("unknown payload should be shown raw:\n%s", out)
	}

	if out := RenderResults(s, nil, nil, 80); !strings.Contains(out, "No results") {
		t.Errorf("nil response view = %q", out)
	}
	if out := RenderResults(s, nil, session.ErrNotFound, 80); !strings.Contains(out, "unavailable") {
		t.Errorf("error view = %q", out)
	}
}

func TestResultsModel_SetPayload(t *testing.T) {
	m := NewResultsModel(components.DefaultStyles()).SetPayload(json.RawMessage(`{"success": true, "risk_percentage": 75, "risk_category": "At Risk"}`))
	if m.Response() == nil || m.Response().Result.RiskCategory != "At Risk" {
		t.Fatalf("response = %+v", m.Response())
	}
	if !strings.Contains(m.View(), "75.0%") {
		t.Error("view missing percentage")
	}
}

// --- help panel ---

func TestHelpPanel(t *testing.T) {
	s := components.DefaultStyles()
	p := NewHelpPanel(s).SetText("some text")
	if got := p.View(); got != "" {
		t.Errorf("expected empty when hidden, got %q", got)
	}
	out := p.SetVisible(true).SetWidth(40).View()
	if !strings.Contains(out, "some text") || !strings.Contains(out, "About this question") {
		t.Errorf("panel = %q", out)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t, &stubSubmitter{}, session.NewMemory())
	m, _ = send(m, key("?"))
	if !strings.Contains(m.View(), "About this question") {
		t.Error("help panel should be visible after ?")
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("wordWrap = %q", got)
	}
	if wordWrap("   ", 10) != "" {
		t.Error("blank text should wrap to empty")
	}
}
