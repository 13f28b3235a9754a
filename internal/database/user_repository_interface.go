package database

import (
	"context"

	"github.com/thenoetrevino/tally/internal/models"
)

// UserRepository defines the user operations needed by registration, login
// and owner resolution. Users are never updated or deleted.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
}
