package cli

import (
	"fmt"
	"strings"

	"github.com/druarnfield/mindcheck/internal/form"
	"github.com/spf13/cobra"
)

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the questionnaire sections and questions",
		RunE:  runQuestions,
	}
}

func runQuestions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}
	f, err := loadForm(cfg)
	if err != nil {
		return err
	}

	if f.Title != "" {
		fmt.Fprintln(out, f.Title)
		fmt.Fprintln(out)
	}
	for _, s := range f.Sections {
		fmt.Fprintf(out, "%d. %s\n", s.Index+1, s.Title)
		for _, fld := range s.Fields {
			fmt.Fprintln(out, describeField(fld))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func describeField(f *form.Field) string {
	mark := " "
	if f.Required {
		mark = "*"
	}
	name := f.Name
	if f.Kind == form.KindRadio {
		name = f.GroupName()
	}
	line := fmt.Sprintf("   %s %-20s %-8s %s", mark, name, f.Kind, f.Label)
	if len(f.Options) > 0 {
		values := make([]string, len(f.Options))
		for i, o := range f.Options {
			values[i] = o.Value
		}
		line += " [" + strings.Join(values, "|") + "]"
	}
	return line
}
