package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tally/internal/models"
)

// ErrDuplicateUsername is returned when inserting a username that already exists
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

// CreateUser inserts a user row and returns the stored form
func (r *UserRepo) CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, string(role),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to insert user '%s': %w", username, ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("failed to insert user '%s': %w", username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID after insert: %w", err)
	}

	return r.GetUserByID(ctx, int(id))
}

// GetUserByID retrieves a user by ID. A missing row yields a wrapped sql.ErrNoRows.
func (r *UserRepo) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by exact (case-sensitive) username
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return user, nil
}

// UserExists reports whether the username is taken
func (r *UserRepo) UserExists(ctx context.Context, username string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
	if err != nil {
		return false, fmt.Errorf("failed to check user '%s': %w", username, err)
	}
	return found, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}
