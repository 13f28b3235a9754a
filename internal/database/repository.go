package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*ProjectRepo
	*TaskRepo

	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		TaskRepo:    &TaskRepo{db: db},
		db:          db,
	}
}

// Ping checks the connection (used by the health endpoint)
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the underlying database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
