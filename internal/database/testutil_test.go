package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tally/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tally-test.db")
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db, path
}

// ============================================================================
// FIXTURES
// ============================================================================

func createTestUser(t *testing.T, repo *Repository, username string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), username, "hash", models.RoleUser)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createTestProject(t *testing.T, repo *Repository, userID int, title string) *models.Project {
	t.Helper()
	project, err := repo.CreateProject(context.Background(), userID, title, "")
	if err != nil {
		t.Fatalf("Failed to create project %s: %v", title, err)
	}
	return project
}

func createTestTask(t *testing.T, repo *Repository, projectID int, title string, completed bool) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), projectID, title, "", models.Date{}, completed)
	if err != nil {
		t.Fatalf("Failed to create task %s: %v", title, err)
	}
	return task
}
