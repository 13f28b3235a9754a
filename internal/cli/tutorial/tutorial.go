// Package tutorial prints the built-in quickstart
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a quickstart guide",
		Long: `Print a short walkthrough of accounts, projects, tasks and the API.
Pass --raw for plain markdown, e.g. to feed it to another tool.`,
		Run: func(cmd *cobra.Command, args []string) {
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), tutorialContent)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Markdown(tutorialContent, 80))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print unrendered markdown")

	return cmd
}
