package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tally/internal/models"
)

const projectColumns = `id, title, description, user_id, created_at, updated_at`

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

// CreateProject inserts a project owned by userID and returns the stored form
func (r *ProjectRepo) CreateProject(ctx context.Context, userID int, title, description string) (*models.Project, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (title, description, user_id) VALUES (?, ?, ?)`,
		title, StringToNullString(description), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", title, err)
	}

	projectID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get project ID after insert: %w", err)
	}

	return r.GetProjectByID(ctx, int(projectID))
}

// GetProjectByID retrieves a project by its ID
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	project, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return project, nil
}

// ProjectExists reports whether a project with the ID exists
func (r *ProjectRepo) ProjectExists(ctx context.Context, id int) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check project %d: %w", id, err)
	}
	return found, nil
}

// ListProjectsByUser returns one page of a user's projects, newest (highest ID) first
func (r *ProjectRepo) ListProjectsByUser(ctx context.Context, userID, limit, offset int) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for user %d: %w", userID, err)
	}
	defer closeRows(rows)

	projects := make([]*models.Project, 0, limit)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// CountProjectsByUser returns how many projects the user owns
func (r *ProjectRepo) CountProjectsByUser(ctx context.Context, userID int) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM projects WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects for user %d: %w", userID, err)
	}
	return n, nil
}

// UpdateProject overwrites a project's title and description. The owner is never touched.
func (r *ProjectRepo) UpdateProject(ctx context.Context, id int, title, description string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, StringToNullString(description), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", id, err)
	}
	return nil
}

// DeleteProject removes a project and all its tasks
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		// The foreign key cascades too; deleting explicitly keeps the
		// behaviour when a connection was opened without foreign_keys.
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete tasks for project %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete project %d: %w", id, err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var description sql.NullString
	if err := row.Scan(
		&project.ID, &project.Title, &description, &project.UserID,
		&project.CreatedAt, &project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	project.Description = NullStringToString(description)
	return project, nil
}
