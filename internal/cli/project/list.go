package project

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/services/project"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's projects",
		Long: `List the projects owned by a user, newest first.

Examples:
  tally project list --user alice
  tally project list --user alice --page 1 --size 20 --json`,
		RunE: handler.Command(handler.HandlerFunc(runList)),
	}

	cmd.Flags().String("user", "", "Owner username (or TALLY_USER)")
	handler.AddPageFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	username := flags.ParseUsername()
	if username == "" {
		return nil, apperror.NewUnauthenticated(project.ErrNotAuthenticated, "User not authenticated")
	}
	page, err := flags.ParsePage()
	if err != nil {
		return nil, err
	}
	return c.App.ProjectService.ListByOwner(ctx, username, page)
}
