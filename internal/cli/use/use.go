// Package use holds all cli commands related to setting contextual information
// e.g., tally use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings (project, user)",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command allows you to set persistent context that applies to
subsequent commands, eliminating the need to repeatedly specify flags.

Available contexts:
  - project: Set the current project context (TALLY_PROJECT)
  - user: Set the acting user (TALLY_USER)

Examples:
  eval $(tally use project 3)       # Use project 3
  eval $(tally use user alice)      # Act as alice
  eval $(tally use project --clear) # Clear project context
  tally use project --show          # Show current project`,
	}

	cmd.AddCommand(ProjectCmd())
	cmd.AddCommand(UserCmd())

	return cmd
}

// addContextFlags registers the flags shared by every context
func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("clear", false, "Clear the current context")
	cmd.Flags().Bool("show", false, "Show the current context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")
}
