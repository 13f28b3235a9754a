package use

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// UserCmd returns the use user subcommand
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user [username]",
		Short: "Set the acting user for current shell session",
		Long: `Set the acting user using the TALLY_USER environment variable:

  eval $(tally use user alice)
  eval $(tally use user --clear)
  tally use user --show

The --user flag on other commands takes precedence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseUser,
	}

	addContextFlags(cmd)

	return cmd
}

func runUseUser(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if showFlag {
		if current := os.Getenv(handler.UserEnv); current != "" {
			fmt.Fprintf(out, "Current user: %s\n", current)
		} else {
			fmt.Fprintln(out, "No user context set")
		}
		return nil
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(errOut, "Would clear %s\n", handler.UserEnv)
			return nil
		}
		fmt.Fprintf(out, "unset %s\n", handler.UserEnv)
		return nil
	}

	formatter := &cli.OutputFormatter{}
	if len(args) == 0 || args[0] == "" {
		return formatter.Fail(cli.NewUsageError("username required\nUsage: eval $(tally use user <username>)"))
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

	principal, err := cliInstance.ResolvePrincipal(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if dryRun {
		fmt.Fprintf(errOut, "Would set %s=%s\n", handler.UserEnv, principal.Username)
		return nil
	}

	fmt.Fprintf(out, "export %s=%s\n", handler.UserEnv, principal.Username)
	fmt.Fprintf(errOut, "Now acting as %s\n", principal.Username)
	return nil
}
