package task

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done",
		Short: "Mark a task as completed",
		Long:  "Shorthand for task update --completed. Pass --undo to reopen the task.",
		RunE:  handler.Command(handler.HandlerFunc(runDone)),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("undo", false, "Mark the task as not completed")
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDone(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	id, err := flags.ParseID("id")
	if err != nil {
		return nil, err
	}
	undo, err := flags.ParseBool("undo")
	if err != nil {
		return nil, err
	}
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}

	current, err := c.App.TaskService.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.App.TaskService.UpdateTask(ctx, caller, taskservice.UpdateTaskRequest{
		ID:          id,
		Title:       current.Title,
		Description: current.Description,
		Deadline:    current.Deadline,
		Completed:   !undo,
	})
}
