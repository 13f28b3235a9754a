package project

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a project",
		Long: `Replace a project's title and description.
The description is kept when --description is not given.

Examples:
  tally project update --id 3 --title "Launch v2"
  tally project update --id 3 --title "Launch v2" --description ""`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate)),
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("title", "", "New project title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "New project description")
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	id, err := flags.ParseID("id")
	if err != nil {
		return nil, err
	}
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}
	title, err := flags.ParseString("title")
	if err != nil {
		return nil, err
	}

	req := project.UpdateProjectRequest{ID: id, Title: title}
	if flags.Changed("description") {
		if req.Description, err = flags.ParseString("description"); err != nil {
			return nil, err
		}
	} else {
		current, err := c.App.ProjectService.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		req.Description = current.Description
	}

	return c.App.ProjectService.UpdateProject(ctx, caller, req)
}
