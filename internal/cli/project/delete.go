package project

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		Long:  "Delete a project and all of its tasks (requires confirmation unless --force, --json or --quiet).",
	}
	cmd.RunE = handler.Command(handler.HandlerFunc(func(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
		return runDelete(ctx, cmd, c, flags)
	}))

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cmd.Flags().String("user", "", "Acting username (or TALLY_USER)")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, cmd *cobra.Command, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	id, err := flags.ParseID("id")
	if err != nil {
		return nil, err
	}
	caller, err := c.ResolvePrincipal(ctx, flags.ParseUsername())
	if err != nil {
		return nil, err
	}

	// Get project details for confirmation
	p, err := c.App.ProjectService.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	force, _ := flags.ParseBool("force")
	jsonOutput, _ := flags.ParseBool("json")
	quietMode, _ := flags.ParseBool("quiet")
	if !force && !jsonOutput && !quietMode {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete project #%d: '%s' and all its tasks? (y/N): ", id, p.Title)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			return cli.Message{Text: "Cancelled"}, nil
		}
	}

	if err := c.App.ProjectService.DeleteProject(ctx, caller, id); err != nil {
		return nil, err
	}
	return cli.Message{Text: fmt.Sprintf("Deleted project #%d: %s", id, p.Title), ID: id}, nil
}
