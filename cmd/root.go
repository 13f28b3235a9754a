// Package cmd assembles the tally command tree
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/analytics"
	"github.com/thenoetrevino/tally/internal/cli/project"
	"github.com/thenoetrevino/tally/internal/cli/serve"
	"github.com/thenoetrevino/tally/internal/cli/setup"
	"github.com/thenoetrevino/tally/internal/cli/task"
	"github.com/thenoetrevino/tally/internal/cli/tutorial"
	"github.com/thenoetrevino/tally/internal/cli/use"
	"github.com/thenoetrevino/tally/internal/cli/user"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/logging"
)

// logFile holds whatever log destination the pre-run hook opened.
// cobra skips post-run hooks when a command fails, so the caller closes it.
type logFile struct {
	closer io.Closer
}

// Close releases the log file; it is safe to call when nothing was opened
func (l *logFile) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// NewRootCmd builds the root command with every subcommand attached.
// Close the returned io.Closer once the command has run.
func NewRootCmd() (*cobra.Command, io.Closer) {
	var configPath string
	logs := &logFile{}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally - projects, tasks and progress for many users",
		Long: `Tally tracks projects and their tasks for many users and reports how far
each project has progressed. Use the subcommands directly or run 'tally serve'
for the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return (&cli.OutputFormatter{}).Fail(err)
			}

			logs.closer, err = logging.Init(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				File:   cfg.Log.File,
			})
			if err != nil {
				return (&cli.OutputFormatter{}).Fail(err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(cli.WithConfig(ctx, cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $TALLY_CONFIG or ~/.config/tally/config.yaml)")

	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(analytics.AnalyticsCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(setup.SetupCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())

	return rootCmd, logs
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context) int {
	root, logs := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := logs.Close(); cerr != nil {
		slog.Error("failed to close log file", "error", cerr)
	}
	return cli.ExitCodeFor(err)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
