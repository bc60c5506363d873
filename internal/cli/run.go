package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/druarnfield/mindcheck/internal/tui/questionnaire"
	"github.com/druarnfield/mindcheck/internal/wizard"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Answer the questionnaire interactively",
		Long:  "Open the questionnaire in the terminal. Answers are sent for prediction after the last section and the results are shown straight away.",
		RunE:  runQuestionnaire,
	}
}

func runQuestionnaire(cmd *cobra.Command, args []string) error {
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

	client := newClient(cfg, logger)
	st := openSession(cfg)
	logger.Info("starting questionnaire", "endpoint", client.URL(), "sections", f.Len())

	m, err := questionnaire.New(f, client, st, logger, labelsFor(cfg))
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running questionnaire: %w", err)
	}

	if fm, ok := final.(questionnaire.Model); ok {
		logger.Info("questionnaire finished", "outcome", fm.Outcome().String())
		if fm.Outcome() == wizard.OutcomeAccepted {
			fmt.Fprintf(out, "Results saved. Run 'mindcheck results' to see them again.\n")
		}
	}
	return nil
}
