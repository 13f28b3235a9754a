package database

import (
	"context"

	"github.com/thenoetrevino/tally/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	TaskExists(ctx context.Context, id int) (bool, error)
	ListTasksByProject(ctx context.Context, projectID, limit, offset int) ([]*models.Task, error)
	CountTasksByProject(ctx context.Context, projectID int) (int, error)
}

// TaskStats defines the aggregate queries used by analytics.
type TaskStats interface {
	CountTasksByProject(ctx context.Context, projectID int) (int, error)
	CountCompletedTasksByProject(ctx context.Context, projectID int) (int, error)
	GetTaskCounts(ctx context.Context, projectID int) (total, completed int, err error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, projectID int, title, description string, deadline models.Date, completed bool) (*models.Task, error)
	UpdateTask(ctx context.Context, id int, title, description string, deadline models.Date, completed bool) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskStats
	TaskWriter
}
