package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		RunE:  handler.Command(handler.HandlerFunc(runDelete)),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	id, err := flags.ParseID("id")
	if err != nil {
		return nil, err
	}
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}

	if err := c.App.TaskService.DeleteTask(ctx, caller, id); err != nil {
		return nil, err
	}
	return cli.Message{Text: fmt.Sprintf("Deleted task #%d", id), ID: id}, nil
}
