package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tally/internal/database"
)

// SetupTestDB creates an in-memory database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestUser inserts a user and returns its ID.
// The password hash is a placeholder; use the auth service for real credentials.
func CreateTestUser(t testing.TB, db *sql.DB, username string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, 'USER')",
		username, "x")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestProject inserts a project owned by userID and returns its ID
func CreateTestProject(t testing.TB, db *sql.DB, userID int, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO projects (title, description, user_id) VALUES (?, '', ?)",
		title, userID)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestTask inserts a task into projectID and returns its ID
func CreateTestTask(t testing.TB, db *sql.DB, projectID int, title string, completed bool) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (title, description, completed, project_id) VALUES (?, '', ?, ?)",
		title, completed, projectID)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CountRows returns the number of rows in table. Only for fixed table names.
func CountRows(t testing.TB, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
