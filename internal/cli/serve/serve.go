// Package serve runs the HTTP API
package serve

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/httpapi"
)

var errMissingSecret = errors.New("jwt secret is not configured")

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the REST API and the /api/events stream until interrupted.
Requires auth.jwt_secret (or TALLY_JWT_SECRET); run 'tally setup' to generate one.

Examples:
  tally serve
  tally serve --addr :9090`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &cli.OutputFormatter{}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	cfg := *cliInstance.Config
	if cfg.Auth.JWTSecret == "" {
		_ = formatter.ErrorWithSuggestion("USAGE_ERROR",
			"auth.jwt_secret is not configured; the API cannot issue tokens",
			"Run 'tally setup' or set TALLY_JWT_SECRET")
		return &cli.ExitCodeError{Code: cli.ExitUsage, Err: errMissingSecret}
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(cliInstance.App, &cfg)
	if err := server.ListenAndServe(ctx); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
