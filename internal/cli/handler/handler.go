// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command against an open CLI context and returns the
	// value to print
	Execute(ctx context.Context, c *cli.CLI, flags *FlagParser) (any, error)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, c *cli.CLI, flags *FlagParser) (any, error)

// Execute calls f
func (f HandlerFunc) Execute(ctx context.Context, c *cli.CLI, flags *FlagParser) (any, error) {
	return f(ctx, c, flags)
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Command wraps common command execution logic
// Returns a cobra RunE compatible function
func Command(h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Get formatter from flags
		jsonOutput, _ := cmd.Flags().GetBool("json")
		quietMode, _ := cmd.Flags().GetBool("quiet")
		formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("Error closing CLI", "error", err)
			}
		}()

		flags := NewFlagParser(cmd, args, cliInstance.Config.Pagination.DefaultSize)

		result, err := h.Execute(ctx, cliInstance, flags)
		if err != nil {
			return formatter.Fail(err)
		}

		// Common output formatting
		return formatter.Success(result)
	}
}
