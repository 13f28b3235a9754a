package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
)

// Service defines all project-related business operations.
// Every operation that acts on behalf of a caller receives the caller
// explicitly; nothing is read from ambient state.
type Service interface {
	// Read operations
	ListByOwner(ctx context.Context, username string, page models.PageRequest) (models.Page[*models.Project], error)
	GetProject(ctx context.Context, id int) (*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, caller *models.Principal, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, caller *models.Principal, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, caller *models.Principal, id int) error
}

// CreateProjectRequest encapsulates data for creating a project.
// There is no owner field: the owner is always the caller.
type CreateProjectRequest struct {
	Title       string
	Description string
}

// UpdateProjectRequest encapsulates data for updating a project.
// Title and description are overwritten; the owner is never changed.
type UpdateProjectRequest struct {
	ID          int
	Title       string
	Description string
}

// repository defines the data access methods needed by the project service
// This interface is private to the service layer
type repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)

	CreateProject(ctx context.Context, userID int, title, description string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	ProjectExists(ctx context.Context, id int) (bool, error)
	ListProjectsByUser(ctx context.Context, userID, limit, offset int) ([]*models.Project, error)
	CountProjectsByUser(ctx context.Context, userID int) (int, error)
	UpdateProject(ctx context.Context, id int, title, description string) error
	DeleteProject(ctx context.Context, id int) error
}

// Option configures the project service
type Option func(*service)

// WithOwnershipEnforcement makes update and delete fail with Forbidden unless
// the caller owns the project. Off by default.
func WithOwnershipEnforcement(enabled bool) Option {
	return func(s *service) {
		s.enforceOwnership = enabled
	}
}

// WithMaxPageSize bounds the page size accepted by ListByOwner
func WithMaxPageSize(size int) Option {
	return func(s *service) {
		s.maxPageSize = size
	}
}

// service implements Service interface with private repository
type service struct {
	repo             repository
	eventClient      events.EventPublisher
	enforceOwnership bool
	maxPageSize      int
}

// NewService creates a new project service with private repository
func NewService(repo repository, eventClient events.EventPublisher, opts ...Option) Service {
	s := &service{
		repo:        repo,
		eventClient: eventClient,
		maxPageSize: models.MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListByOwner returns one page of the user's projects, newest first
func (s *service) ListByOwner(ctx context.Context, username string, page models.PageRequest) (models.Page[*models.Project], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return models.Page[*models.Project]{}, apperror.NewValidation(err)
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page[*models.Project]{}, apperror.NewNotFound(ErrUserNotFound,
				"User not found with username : %s", username)
		}
		return models.Page[*models.Project]{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	total, err := s.repo.CountProjectsByUser(ctx, user.ID)
	if err != nil {
		return models.Page[*models.Project]{}, err
	}

	projects, err := s.repo.ListProjectsByUser(ctx, user.ID, page.Size, page.Offset())
	if err != nil {
		return models.Page[*models.Project]{}, err
	}

	return models.NewPage(projects, page, total), nil
}

// GetProject retrieves a specific project
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	return s.findProject(ctx, id)
}

// CreateProject creates a project owned by the caller
func (s *service) CreateProject(ctx context.Context, caller *models.Principal, req CreateProjectRequest) (*models.Project, error) {
	if caller == nil {
		return nil, apperror.NewUnauthenticated(ErrNotAuthenticated, "User not authenticated")
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, apperror.NewValidation(err)
	}

	// The principal may outlive its user row (token issued before a reset)
	owner, err := s.repo.GetUserByUsername(ctx, caller.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(ErrUserNotFound,
				"User not found with username : %s", caller.Username)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	project, err := s.repo.CreateProject(ctx, owner.ID, req.Title, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	events.Notify(s.eventClient, events.EventProjectCreated, project.ID, project.ID)

	return project, nil
}

// UpdateProject overwrites the title and description of an existing project
func (s *service) UpdateProject(ctx context.Context, caller *models.Principal, req UpdateProjectRequest) (*models.Project, error) {
	project, err := s.findProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(caller, project); err != nil {
		return nil, err
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, apperror.NewValidation(err)
	}

	if err := s.repo.UpdateProject(ctx, project.ID, req.Title, req.Description); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.repo.GetProjectByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}

	events.Notify(s.eventClient, events.EventProjectUpdated, updated.ID, updated.ID)

	return updated, nil
}

// DeleteProject deletes a project and, with it, all of its tasks
func (s *service) DeleteProject(ctx context.Context, caller *models.Principal, id int) error {
	if s.enforceOwnership {
		project, err := s.findProject(ctx, id)
		if err != nil {
			return err
		}
		if err := s.requireOwnership(caller, project); err != nil {
			return err
		}
	} else {
		found, err := s.repo.ProjectExists(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return projectNotFound(id)
		}
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	events.Notify(s.eventClient, events.EventProjectDeleted, id, id)

	return nil
}

// findProject loads a project, translating a missing row into NotFound
func (s *service) findProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, projectNotFound(id)
	}
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, projectNotFound(id)
		}
		return nil, err
	}
	return project, nil
}

// requireOwnership is a no-op unless ownership enforcement is enabled
func (s *service) requireOwnership(caller *models.Principal, project *models.Project) error {
	if !s.enforceOwnership {
		return nil
	}
	return RequireOwnership(caller, project)
}

// RequireOwnership fails unless caller is the owner of project
func RequireOwnership(caller *models.Principal, project *models.Project) error {
	if caller == nil {
		return apperror.NewUnauthenticated(ErrNotAuthenticated, "User not authenticated")
	}
	if caller.UserID != project.UserID {
		return apperror.NewForbidden(ErrNotOwner,
			"Project with id : %d does not belong to user : %s", project.ID, caller.Username)
	}
	return nil
}

func projectNotFound(id int) error {
	return apperror.NewNotFound(ErrProjectNotFound, "Project with id : %d not found", id)
}

// validateTitle enforces the title rules shared by create and update.
// The title is stored as given; trimming only decides whether it is blank.
func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
