package task

import "errors"

// Domain errors for task service
var (
	// Validation errors
	ErrEmptyTitle   = errors.New("task title cannot be empty")
	ErrTitleTooLong = errors.New("task title cannot exceed 255 characters")

	// Business logic errors
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

// MaxTitleLength is the longest task title accepted
const MaxTitleLength = 255
