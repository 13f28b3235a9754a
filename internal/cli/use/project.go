package use

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(tally use project 3)              # Use project 3
  eval $(tally use project --clear)        # Clear project context
  tally use project --show                 # Show current project

The TALLY_PROJECT environment variable will be set in your current shell
session only. The --project flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	addContextFlags(cmd)

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Handle --show flag
	if showFlag {
		return showCurrentProject(ctx, cmd)
	}

	// Handle --clear flag
	if clearFlag {
		if dryRun {
			fmt.Fprintf(errOut, "Would clear %s\n", handler.ProjectEnv)
			return nil
		}
		fmt.Fprintf(out, "unset %s\n", handler.ProjectEnv)
		fmt.Fprintf(errOut, "Cleared project context\n")
		return nil
	}

	formatter := &cli.OutputFormatter{}

	// Validate project ID provided
	if len(args) == 0 {
		return formatter.Fail(cli.NewUsageError("project ID required\nUsage: eval $(tally use project <project-id>)"))
	}
	projectID, err := strconv.Atoi(args[0])
	if err != nil || projectID <= 0 {
		return formatter.Fail(cli.NewUsageError("invalid project ID: %s", args[0]))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	// Validate project exists
	project, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}

	// Output shell export command (to stdout for eval)
	if dryRun {
		fmt.Fprintf(errOut, "Would set %s=%d (%s)\n", handler.ProjectEnv, projectID, project.Title)
		return nil
	}

	fmt.Fprintf(out, "export %s=%d\n", handler.ProjectEnv, projectID)
	fmt.Fprintf(errOut, "Now using project %d: %s\n", projectID, project.Title)

	return nil
}

func showCurrentProject(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	currentProject := os.Getenv(handler.ProjectEnv)
	if currentProject == "" {
		fmt.Fprintln(out, "No project context set")
		fmt.Fprintln(out, "Use 'eval $(tally use project <project-id>)' to set one")
		return nil
	}

	projectID, err := strconv.Atoi(currentProject)
	if err != nil {
		fmt.Fprintf(out, "Invalid project context: %s\n", currentProject)
		return nil
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return (&cli.OutputFormatter{}).Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		fmt.Fprintf(out, "Current project: %s (project not found)\n", currentProject)
		return nil
	}

	fmt.Fprintf(out, "Current project: %d (%s)\n", projectID, project.Title)
	return nil
}
