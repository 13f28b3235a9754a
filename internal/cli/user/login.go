package user

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// LoginCmd returns the user login subcommand
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print a bearer token",
		RunE:  handler.Command(handler.HandlerFunc(runLogin)),
	}

	cmd.Flags().String("username", "", "Username (required)")
	cmd.Flags().String("password", "", "Password (required)")
	for _, name := range []string{"username", "password"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("Error marking flag as required", "error", err)
		}
	}
	handler.AddOutputFlags(cmd)

	return cmd
}

func runLogin(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	username, err := flags.ParseString("username")
	if err != nil {
		return nil, err
	}
	password, err := flags.ParseString("password")
	if err != nil {
		return nil, err
	}

	principal, token, err := c.App.AuthService.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return Session{Principal: principal, Token: token}, nil
}
