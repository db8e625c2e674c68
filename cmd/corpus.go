package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviz/internal/concept"
	"github.com/abhisek/interviz/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and validate question corpora",
}

var corpusValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a JSON or YAML corpus (the built-in corpus when no path is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := corpus.Load(optionalArg(args))
		if err != nil {
			return err
		}

		var missing int
		for _, q := range c.All() {
			if q.Reference == "" {
				missing++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions in %d categories (%d without reference answers)\n",
			c.Len(), len(c.Categories()), missing)
		return nil
	},
}

var corpusListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List corpus questions with their concept keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := corpus.Load(optionalArg(args))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, category := range c.Categories() {
			questions, _ := c.Questions(category)
			fmt.Fprintf(out, "%s (%d)\n", category, len(questions))
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, q := range questions {
				ref := " "
				if q.Reference == "" {
					ref = "-"
				}
				fmt.Fprintf(out, "%s %-14s  %s\n", ref, concept.Extract(q.Text), q.Text)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	corpusCmd.AddCommand(corpusValidateCmd)
	corpusCmd.AddCommand(corpusListCmd)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
