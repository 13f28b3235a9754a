package project

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a project owned by the acting user.

Examples:
  tally project create --user alice --title "Launch"
  tally project create --user alice --title "Launch" --description "Q3 launch" --quiet`,
		RunE: handler.Command(handler.HandlerFunc(runCreate)),
	}

	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	cmd.Flags().String("title", "", "Project title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Project description")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}
	title, err := flags.ParseString("title")
	if err != nil {
		return nil, err
	}
	description, err := flags.ParseString("description")
	if err != nil {
		return nil, err
	}

	return c.App.ProjectService.CreateProject(ctx, caller, project.CreateProjectRequest{
		Title:       title,
		Description: description,
	})
}
