package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tally/internal/auth"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	analyticsservice "github.com/thenoetrevino/tally/internal/services/analytics"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo *database.Repository

	// Event system for live updates. Broker is nil unless the app owns one.
	eventClient events.EventPublisher
	Broker      *events.Broker

	Logger *slog.Logger

	// Service layer (business logic)
	ProjectService   projectservice.Service
	TaskService      taskservice.Service
	AnalyticsService analyticsservice.Service
	AuthService      auth.Service

	// MaxPageSize is the bound the list services enforce
	MaxPageSize int

	// EnforceOwnership mirrors the switch handed to the project and task services
	EnforceOwnership bool
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo *database.Repository, opts ...Option) *App {
	cfg := &appConfig{maxPageSize: models.MaxPageSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &App{
		repo:             repo,
		eventClient:      cfg.eventClient,
		Logger:           cfg.logger,
		MaxPageSize:      cfg.maxPageSize,
		EnforceOwnership: cfg.enforceOwnership,
		ProjectService: projectservice.NewService(repo, cfg.eventClient,
			projectservice.WithOwnershipEnforcement(cfg.enforceOwnership),
			projectservice.WithMaxPageSize(cfg.maxPageSize)),
		TaskService: taskservice.NewService(repo, cfg.eventClient,
			taskservice.WithOwnershipEnforcement(cfg.enforceOwnership),
			taskservice.WithMaxPageSize(cfg.maxPageSize)),
		AnalyticsService: analyticsservice.NewService(repo),
		AuthService:      auth.NewService(repo, cfg.tokens, cfg.authOpts...),
	}
}

// Open opens the configured database and builds an App that owns it along
// with an event broker. Tokens are only issued when a JWT secret is set.
func Open(ctx context.Context, c *config.Config, opts ...Option) (*App, error) {
	path := c.Database.Path
	if path == "" {
		defaultPath, err := database.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		path = defaultPath
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, err
	}

	broker := events.NewBroker(events.DefaultBufferSize)
	base := []Option{
		WithEventPublisher(broker),
		WithOwnershipEnforcement(c.Security.EnforceOwnership),
		WithMaxPageSize(c.Pagination.MaxSize),
	}
	if c.Auth.JWTSecret != "" {
		tokens, err := auth.NewTokens(c.Auth.JWTSecret, c.Auth.TokenTTL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		base = append(base, WithTokens(tokens))
	}

	a := New(database.NewRepository(db), append(base, opts...)...)
	a.Broker = broker
	return a, nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Ping checks that the store is reachable
func (a *App) Ping(ctx context.Context) error {
	return a.repo.Ping(ctx)
}

// Close releases the broker and the database
func (a *App) Close() error {
	var errs []error
	if a.Broker != nil {
		errs = append(errs, a.Broker.Close())
	}
	errs = append(errs, a.repo.Close())
	return errors.Join(errs...)
}
