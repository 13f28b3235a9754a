package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tally/internal/models"
)

const taskColumns = `id, title, description, deadline, completed, project_id, created_at, updated_at`

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// CreateTask inserts a task under projectID and returns the stored form
func (r *TaskRepo) CreateTask(ctx context.Context, projectID int, title, description string, deadline models.Date, completed bool) (*models.Task, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, deadline, completed, project_id) VALUES (?, ?, ?, ?, ?)`,
		title, StringToNullString(description), deadline, completed, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task '%s' into project %d: %w", title, projectID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task ID after insert: %w", err)
	}

	return r.GetTaskByID(ctx, int(id))
}

// GetTaskByID retrieves a task by its ID
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// TaskExists reports whether a task with the ID exists
func (r *TaskRepo) TaskExists(ctx context.Context, id int) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check task %d: %w", id, err)
	}
	return found, nil
}

// ListTasksByProject returns one page of a project's tasks, newest (highest ID) first
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID, limit, offset int) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		projectID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for project %d: %w", projectID, err)
	}
	defer closeRows(rows)

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// CountTasksByProject returns the number of tasks in a project (0 for unknown projects)
func (r *TaskRepo) CountTasksByProject(ctx context.Context, projectID int) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for project %d: %w", projectID, err)
	}
	return n, nil
}

// CountCompletedTasksByProject returns the number of completed tasks in a project
func (r *TaskRepo) CountCompletedTasksByProject(ctx context.Context, projectID int) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM tasks WHERE project_id = ? AND completed = 1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks for project %d: %w", projectID, err)
	}
	return n, nil
}

// GetTaskCounts reads the total and completed counts in one statement so the
// pair is consistent with each other
func (r *TaskRepo) GetTaskCounts(ctx context.Context, projectID int) (total, completed int, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0)
		 FROM tasks WHERE project_id = ?`,
		projectID,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get task counts for project %d: %w", projectID, err)
	}
	return total, completed, nil
}

// UpdateTask overwrites title, description, deadline and completed. The project is never touched.
func (r *TaskRepo) UpdateTask(ctx context.Context, id int, title, description string, deadline models.Date, completed bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, deadline = ?, completed = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, StringToNullString(description), deadline, completed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return nil
}

// DeleteTask removes a task from the database
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	if err := row.Scan(
		&task.ID, &task.Title, &description, &task.Deadline, &task.Completed,
		&task.ProjectID, &task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.Description = NullStringToString(description)
	return task, nil
}
