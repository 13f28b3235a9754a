package task

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task in a project.

Examples:
  tally task create --project 3 --title "Write docs"
  tally task create --project 3 --title "Ship" --deadline 2024-06-30 --quiet`,
		RunE: handler.Command(handler.HandlerFunc(runCreate)),
	}

	cmd.Flags().Int("project", 0, "Project ID (or TALLY_PROJECT)")
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("deadline", "", "Deadline as YYYY-MM-DD")
	cmd.Flags().Bool("completed", false, "Create the task already completed")
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	projectID, err := flags.ParseProjectID()
	if err != nil {
		return nil, err
	}
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}

	req := taskservice.CreateTaskRequest{ProjectID: projectID}
	if req.Title, err = flags.ParseString("title"); err != nil {
		return nil, err
	}
	if req.Description, err = flags.ParseString("description"); err != nil {
		return nil, err
	}
	if req.Deadline, err = flags.ParseDeadline("deadline"); err != nil {
		return nil, err
	}
	if req.Completed, err = flags.ParseBool("completed"); err != nil {
		return nil, err
	}

	return c.App.TaskService.CreateTask(ctx, caller, req)
}
