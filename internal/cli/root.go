package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagVerbose   bool
	flagConfig    string
	flagNoPersist bool
)

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindcheck",
		Short: "Cognitive health risk questionnaire",
		Long:  "mindcheck walks through a multi-section health questionnaire, sends the answers to a risk prediction service and shows the results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Show detailed log output")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to mindcheck.toml")
	cmd.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "Keep results in memory only; nothing is written to the session file")

	cmd.AddCommand(newVersionCmd(version))
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newResultsCmd())
	cmd.AddCommand(newQuestionsCmd())

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print mindcheck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mindcheck", version)
		},
	}
}

func Execute(version string) error {
	return newRootCmd(version).Execute()
}
