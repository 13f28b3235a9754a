package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project",
		Long: `List the tasks of a project, newest first.

Examples:
  tally task list --project 3
  eval $(tally use project 3) && tally task list --size 50 --json`,
		RunE: handler.Command(handler.HandlerFunc(runList)),
	}

	cmd.Flags().Int("project", 0, "Project ID (or TALLY_PROJECT)")
	handler.AddPageFlags(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	projectID, err := flags.ParseProjectID()
	if err != nil {
		return nil, err
	}
	page, err := flags.ParsePage()
	if err != nil {
		return nil, err
	}
	return c.App.TaskService.ListByProject(ctx, projectID, page)
}
