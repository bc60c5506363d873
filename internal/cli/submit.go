package cli

import (
	"fmt"
	"io"

	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
	"github.com/druarnfield/mindcheck/internal/tui/components"
	"github.com/druarnfield/mindcheck/internal/tui/questionnaire"
	"github.com/druarnfield/mindcheck/internal/wizard"
	"github.com/spf13/cobra"
)

var flagAnswers string

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit answers from a file without the interactive wizard",
		Long:  "Fill the questionnaire from a YAML file of field names and answers, check every section, send it for prediction and print the results.",
		RunE:  runSubmit,
	}
	cmd.Flags().StringVar(&flagAnswers, "answers", "", "YAML file of answers (required)")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}

	logger, closeLog := setupLogger(cfg, cmd.ErrOrStderr())
	defer closeLog()

	f, err := loadForm(cfg)
	if err != nil {
		return err
	}

	answers, err := form.LoadAnswers(flagAnswers)
	if err != nil {
		return err
	}
	if err := f.ApplyAnswers(answers); err != nil {
		return fmt.Errorf("applying answers: %w", err)
	}

	client := newClient(cfg, logger)
	st := openSession(cfg)
	surf := &plainSurface{out: out, form: f}

	ctrl, err := wizard.New(f, surf, client, st, wizard.WithLogger(logger), wizard.WithLabels(labelsFor(cfg)))
	if err != nil {
		return err
	}
	defer ctrl.Close()

	for !ctrl.IsLast() {
		if err := ctrl.Advance(); err != nil {
			return err
		}
	}

	outcome, err := ctrl.Submit(cmd.Context())
	if err != nil {
		logger.Warn("submission failed", "outcome", outcome.String(), "error", err)
		return fmt.Errorf("submission %s: %w", outcome, err)
	}

	if surf.navigated != wizard.ResultsPath {
		return fmt.Errorf("submission %s: results page was not opened", outcome)
	}

	var resp *predict.Response
	raw, err := st.Get(session.ResultsKey)
	if err == nil {
		resp, err = predict.Decode(raw)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, questionnaire.RenderResults(components.DefaultStyles(), resp, err, 80))
	if file, ok := st.(*session.File); ok {
		fmt.Fprintf(out, "\nSaved to %s\n", file.Path())
	}
	return nil
}

// plainSurface is a wizard.Surface that prints a line per event.
type plainSurface struct {
	out       io.Writer
	form      *form.Form
	navigated string
}

func (s *plainSurface) ShowSection(active, total int) {
	title := ""
	if sec, err := s.form.Section(active); err == nil {
		title = sec.Title
	}
	fmt.Fprintf(s.out, "  [%d/%d] %s\n", active+1, total, title)
}

func (s *plainSurface) SetProgress(float64)         {}
func (s *plainSurface) SetStepCounter(int, int)     {}
func (s *plainSurface) SetControls(wizard.Controls) {}
func (s *plainSurface) ScrollToTop()                {}

func (s *plainSurface) Alert(message string) {
	fmt.Fprintf(s.out, "  ! %s\n", message)
}

func (s *plainSurface) SetSubmitState(label string, busy bool) {
	if busy {
		fmt.Fprintf(s.out, "  %s\n", label)
	}
}

func (s *plainSurface) Navigate(path string) {
	s.navigated = path
}
