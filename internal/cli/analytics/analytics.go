// Package analytics holds the project progress command
package analytics

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// AnalyticsCmd returns the analytics command
func AnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show task counts and progress for a project",
		Long: `Show total tasks, completed tasks and the completed fraction of a project.
The fraction is undefined (null in JSON) when the project has no tasks.

Examples:
  tally analytics --project 3
  tally analytics --project 3 --json`,
		RunE: handler.Command(handler.HandlerFunc(runAnalytics)),
	}

	cmd.Flags().Int("project", 0, "Project ID (or TALLY_PROJECT)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runAnalytics(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	projectID, err := flags.ParseProjectID()
	if err != nil {
		return nil, err
	}
	return c.App.AnalyticsService.Summary(ctx, projectID)
}
