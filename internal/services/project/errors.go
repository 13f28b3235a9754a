package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyTitle   = errors.New("project title cannot be empty")
	ErrTitleTooLong = errors.New("project title cannot exceed 100 characters")

	// Business logic errors
	ErrProjectNotFound  = errors.New("project not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrNotOwner         = errors.New("project belongs to another user")
)

// MaxTitleLength is the longest project title accepted
const MaxTitleLength = 100
