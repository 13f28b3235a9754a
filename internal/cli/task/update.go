package task

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a task",
		Long: `Update a task's title, description, deadline or completion.
Fields whose flags are not given keep their current values.
Pass --deadline "" to clear the deadline.`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate)),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}

	// Optional update flags
	cmd.Flags().String("title", "", "New task title")
	cmd.Flags().String("description", "", "New task description")
	cmd.Flags().String("deadline", "", "New deadline as YYYY-MM-DD")
	cmd.Flags().Bool("completed", false, "Completion state")
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	id, err := flags.ParseID("id")
	if err != nil {
		return nil, err
	}

	// At least one update field must be provided
	if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("deadline") && !flags.Changed("completed") {
		return nil, cli.NewUsageError("at least one of --title, --description, --deadline or --completed must be specified")
	}

	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}

	current, err := c.App.TaskService.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	req := taskservice.UpdateTaskRequest{
		ID:          id,
		Title:       current.Title,
		Description: current.Description,
		Deadline:    current.Deadline,
		Completed:   current.Completed,
	}

	if flags.Changed("title") {
		if req.Title, err = flags.ParseString("title"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("description") {
		if req.Description, err = flags.ParseString("description"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("deadline") {
		if req.Deadline, err = flags.ParseDeadline("deadline"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("completed") {
		if req.Completed, err = flags.ParseBool("completed"); err != nil {
			return nil, err
		}
	}

	return c.App.TaskService.UpdateTask(ctx, caller, req)
}
