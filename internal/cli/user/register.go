package user

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// RegisterCmd returns the user register subcommand
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long: `Create an account. A token is printed when auth.jwt_secret is configured.
--username defaults to your login name.

Examples:
  tally user register --username alice --password hunter22
  tally user register --username alice --password hunter22 --quiet`,
		RunE: handler.Command(handler.HandlerFunc(runRegister)),
	}

	cmd.Flags().String("username", "", "Username, 3 to 50 characters (default: login name)")
	cmd.Flags().String("password", "", "Password, at least 6 characters (required)")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	handler.AddOutputFlags(cmd)

	return cmd
}

func runRegister(ctx context.Context, c *cli.CLI, flags *handler.FlagParser) (any, error) {
	username, err := flags.ParseString("username")
	if err != nil {
		return nil, err
	}
	if !flags.Changed("username") {
		username = currentUsername()
	}
	password, err := flags.ParseString("password")
	if err != nil {
		return nil, err
	}

	principal, token, err := c.App.AuthService.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return Session{Principal: principal, Token: token}, nil
}
