package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListByProject(ctx context.Context, projectID int, page models.PageRequest) (models.Page[*models.Task], error)
	GetTask(ctx context.Context, id int) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, caller *models.Principal, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, caller *models.Principal, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, caller *models.Principal, id int) error
}

// CreateTaskRequest encapsulates data for creating a task
type CreateTaskRequest struct {
	ProjectID   int
	Title       string
	Description string
	Deadline    models.Date
	Completed   bool
}

// UpdateTaskRequest encapsulates data for updating a task.
// All four mutable fields are overwritten; the project is never changed.
type UpdateTaskRequest struct {
	ID          int
	Title       string
	Description string
	Deadline    models.Date
	Completed   bool
}

// repository defines the data access methods needed by the task service
// This interface is private to the service layer
type repository interface {
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)

	CreateTask(ctx context.Context, projectID int, title, description string, deadline models.Date, completed bool) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID, limit, offset int) ([]*models.Task, error)
	CountTasksByProject(ctx context.Context, projectID int) (int, error)
	UpdateTask(ctx context.Context, id int, title, description string, deadline models.Date, completed bool) error
	DeleteTask(ctx context.Context, id int) error
}

// Option configures the task service
type Option func(*service)

// WithOwnershipEnforcement makes every write fail with Forbidden unless the
// caller owns the task's project. Off by default.
func WithOwnershipEnforcement(enabled bool) Option {
	return func(s *service) {
		s.enforceOwnership = enabled
	}
}

// WithMaxPageSize bounds the page size accepted by ListByProject
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

// NewService creates a new task service with private repository
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

// ListByProject returns one page of a project's tasks, newest first
func (s *service) ListByProject(ctx context.Context, projectID int, page models.PageRequest) (models.Page[*models.Task], error) {
	if err := page.Validate(s.maxPageSize); err != nil {
		return models.Page[*models.Task]{}, apperror.NewValidation(err)
	}

	if _, err := s.findProject(ctx, projectID); err != nil {
		return models.Page[*models.Task]{}, err
	}

	total, err := s.repo.CountTasksByProject(ctx, projectID)
	if err != nil {
		return models.Page[*models.Task]{}, err
	}

	tasks, err := s.repo.ListTasksByProject(ctx, projectID, page.Size, page.Offset())
	if err != nil {
		return models.Page[*models.Task]{}, err
	}

	return models.NewPage(tasks, page, total), nil
}

// GetTask retrieves a specific task
func (s *service) GetTask(ctx context.Context, id int) (*models.Task, error) {
	return s.findTask(ctx, id)
}

// CreateTask creates a task inside an existing project.
// Nothing is persisted when the project does not exist.
func (s *service) CreateTask(ctx context.Context, caller *models.Principal, req CreateTaskRequest) (*models.Task, error) {
	project, err := s.findProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(caller, project); err != nil {
		return nil, err
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, apperror.NewValidation(err)
	}

	task, err := s.repo.CreateTask(ctx, project.ID, req.Title, req.Description, req.Deadline, req.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	events.Notify(s.eventClient, events.EventTaskCreated, task.ProjectID, task.ID)

	return task, nil
}

// UpdateTask overwrites title, description, deadline and completed
func (s *service) UpdateTask(ctx context.Context, caller *models.Principal, req UpdateTaskRequest) (*models.Task, error) {
	task, err := s.findTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.requireTaskOwnership(ctx, caller, task); err != nil {
		return nil, err
	}

	if err := validateTitle(req.Title); err != nil {
		return nil, apperror.NewValidation(err)
	}

	if err := s.repo.UpdateTask(ctx, task.ID, req.Title, req.Description, req.Deadline, req.Completed); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	events.Notify(s.eventClient, events.EventTaskUpdated, updated.ProjectID, updated.ID)

	return updated, nil
}

// DeleteTask removes a single task
func (s *service) DeleteTask(ctx context.Context, caller *models.Principal, id int) error {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireTaskOwnership(ctx, caller, task); err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	events.Notify(s.eventClient, events.EventTaskDeleted, task.ProjectID, task.ID)

	return nil
}

func (s *service) findProject(ctx context.Context, id int) (*models.Project, error) {
	notFound := apperror.NewNotFound(ErrProjectNotFound, "Project not found with id : %d", id)
	if id <= 0 {
		return nil, notFound
	}
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, err
	}
	return project, nil
}

func (s *service) findTask(ctx context.Context, id int) (*models.Task, error) {
	notFound := apperror.NewNotFound(ErrTaskNotFound, "Task with id : %d not found", id)
	if id <= 0 {
		return nil, notFound
	}
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, err
	}
	return task, nil
}

// requireTaskOwnership resolves the task's project before checking ownership
func (s *service) requireTaskOwnership(ctx context.Context, caller *models.Principal, task *models.Task) error {
	if !s.enforceOwnership {
		return nil
	}
	project, err := s.findProject(ctx, task.ProjectID)
	if err != nil {
		return err
	}
	return s.requireOwnership(caller, project)
}

func (s *service) requireOwnership(caller *models.Principal, project *models.Project) error {
	if !s.enforceOwnership {
		return nil
	}
	return projectservice.RequireOwnership(caller, project)
}

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
