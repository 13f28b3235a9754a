package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/models"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	owned  bool
}

// NewCLI opens the configured database and builds the application container
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg := ConfigFromContext(ctx)
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{App: application, Config: cfg, owned: true}, nil
}

// GetCLIFromContext reuses an App placed in ctx by WithApp, or opens one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a := AppFromContext(ctx); a != nil {
		cfg := ConfigFromContext(ctx)
		if cfg == nil {
			cfg = config.Default()
		}
		return &CLI{App: a, Config: cfg}, nil
	}
	return NewCLI(ctx)
}

// Close cleans up CLI resources. An injected App is left open for its owner.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}

// ResolvePrincipal names the acting user. The CLI is a trusted local
// boundary, so a username is enough. An empty username yields a nil principal.
func (c *CLI) ResolvePrincipal(ctx context.Context, username string) (*models.Principal, error) {
	if username == "" {
		return nil, nil
	}
	user, err := c.App.Repo().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(err, "User not found with username : %s", username)
		}
		return nil, err
	}
	return models.PrincipalFor(user), nil
}

type contextKey string

const (
	appKey    contextKey = "app"
	configKey contextKey = "config"
)

// WithApp makes commands run against a instead of opening the database
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// AppFromContext returns the App stored by WithApp, or nil
func AppFromContext(ctx context.Context) *app.App {
	a, _ := ctx.Value(appKey).(*app.App)
	return a
}

// WithConfig stores the loaded configuration for subcommands
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the config stored by WithConfig, or nil
func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey).(*config.Config)
	return cfg
}
