// Package analytics answers per-project task counting questions.
// Unknown projects are not an error here: they simply have no tasks.
package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/thenoetrevino/tally/internal/models"
)

// Service defines the analytics read operations
type Service interface {
	TotalTasks(ctx context.Context, projectID int) (int, error)
	CompletedTasks(ctx context.Context, projectID int) (int, error)
	// Progression is completed/total as a fraction in [0, 1], NaN when the
	// project has no tasks.
	Progression(ctx context.Context, projectID int) (float64, error)
	Summary(ctx context.Context, projectID int) (models.Progress, error)
}

// repository defines the data access methods needed by the analytics service
type repository interface {
	CountTasksByProject(ctx context.Context, projectID int) (int, error)
	CountCompletedTasksByProject(ctx context.Context, projectID int) (int, error)
	GetTaskCounts(ctx context.Context, projectID int) (total, completed int, err error)
}

type service struct {
	repo repository
}

// NewService creates a new analytics service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

func (s *service) TotalTasks(ctx context.Context, projectID int) (int, error) {
	total, err := s.repo.CountTasksByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for project %d: %w", projectID, err)
	}
	return total, nil
}

func (s *service) CompletedTasks(ctx context.Context, projectID int) (int, error) {
	completed, err := s.repo.CountCompletedTasksByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks for project %d: %w", projectID, err)
	}
	return completed, nil
}

// Progression reads both counts in one query so they come from the same snapshot
func (s *service) Progression(ctx context.Context, projectID int) (float64, error) {
	summary, err := s.Summary(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return float64(summary.PercentageProgression), nil
}

func (s *service) Summary(ctx context.Context, projectID int) (models.Progress, error) {
	total, completed, err := s.repo.GetTaskCounts(ctx, projectID)
	if err != nil {
		return models.Progress{}, fmt.Errorf("failed to count tasks for project %d: %w", projectID, err)
	}
	return models.Progress{
		ProjectID:             projectID,
		TotalTasks:            total,
		CompletedTasks:        completed,
		PercentageProgression: models.Ratio(ratio(completed, total)),
	}, nil
}

// ratio is 0/0 = NaN, which is the defined answer for an empty project
func ratio(completed, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(completed) / float64(total)
}
