package database

import (
	"context"

	"github.com/thenoetrevino/tally/internal/models"
)

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	ProjectExists(ctx context.Context, id int) (bool, error)
	ListProjectsByUser(ctx context.Context, userID, limit, offset int) ([]*models.Project, error)
	CountProjectsByUser(ctx context.Context, userID int) (int, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	CreateProject(ctx context.Context, userID int, title, description string) (*models.Project, error)
	UpdateProject(ctx context.Context, id int, title, description string) error
	DeleteProject(ctx context.Context, id int) error
}

// ProjectRepository combines all project-related operations.
type ProjectRepository interface {
	ProjectReader
	ProjectWriter
}
