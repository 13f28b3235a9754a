package app

import (
	"log/slog"

	"github.com/thenoetrevino/tally/internal/auth"
	"github.com/thenoetrevino/tally/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient      events.EventPublisher
	logger           *slog.Logger
	tokens           *auth.Tokens
	authOpts         []auth.Option
	enforceOwnership bool
	maxPageSize      int
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithTokens sets the token signer. Without it no tokens are issued.
func WithTokens(tokens *auth.Tokens) Option {
	return func(cfg *appConfig) {
		cfg.tokens = tokens
	}
}

// WithAuthOptions passes options through to the auth service
func WithAuthOptions(opts ...auth.Option) Option {
	return func(cfg *appConfig) {
		cfg.authOpts = append(cfg.authOpts, opts...)
	}
}

// WithOwnershipEnforcement turns on owner checks for project and task writes
func WithOwnershipEnforcement(enabled bool) Option {
	return func(cfg *appConfig) {
		cfg.enforceOwnership = enabled
	}
}

// WithMaxPageSize bounds page sizes accepted by list operations
func WithMaxPageSize(size int) Option {
	return func(cfg *appConfig) {
		cfg.maxPageSize = size
	}
}
