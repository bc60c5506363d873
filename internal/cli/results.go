package cli

import (
	"errors"
	"fmt"

	"github.com/druarnfield/mindcheck/internal/predict"
	"github.com/druarnfield/mindcheck/internal/session"
	"github.com/druarnfield/mindcheck/internal/tui/components"
	"github.com/druarnfield/mindcheck/internal/tui/questionnaire"
	"github.com/spf13/cobra"
)

// ErrNoResults means nothing has been submitted since results were last read.
var ErrNoResults = errors.New("no stored results; complete the questionnaire first")

var flagKeep bool

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the results of the last submission",
		Long:  "Print the stored results of the last submission. Results are removed once shown unless --keep is given.",
		RunE:  runResults,
	}
	cmd.Flags().BoolVar(&flagKeep, "keep", false, "Leave the results in the session file")
	return cmd
}

func runResults(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}

	logger, closeLog := setupLogger(cfg, cmd.ErrOrStderr())
	defer closeLog()

	st := openSession(cfg)
	read := st.Take
	if flagKeep {
		read = st.Get
	}

	raw, err := read(session.ResultsKey)
	if errors.Is(err, session.ErrNotFound) {
		return ErrNoResults
	}
	if err != nil {
		return fmt.Errorf("reading results: %w", err)
	}
	logger.Debug("results read", "keep", flagKeep, "persist", !flagNoPersist)

	resp, decErr := predict.Decode(raw)
	fmt.Fprint(out, questionnaire.RenderResults(components.DefaultStyles(), resp, decErr, 80))
	return nil
}
