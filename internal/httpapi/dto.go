package httpapi

import "github.com/thenoetrevino/tally/internal/models"

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// TokenResponse carries a bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateProjectRequest is the body of POST /api/projects.
// A client-supplied userId is accepted and ignored; the owner is the caller.
type CreateProjectRequest struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description"`
	UserID      int    `json:"userId"`
}

// UpdateProjectRequest is the body of PUT /api/projects
type UpdateProjectRequest struct {
	ID          int    `json:"id" validate:"gt=0"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description"`
	UserID      int    `json:"userId"`
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	ID          int         `json:"id"`
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description"`
	Deadline    models.Date `json:"deadline"`
	Completed   *bool       `json:"completed"`
	ProjectID   int         `json:"projectId" validate:"gt=0"`
}

// UpdateTaskRequest is the body of PUT /api/tasks. projectId is ignored.
type UpdateTaskRequest struct {
	ID          int         `json:"id" validate:"gt=0"`
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description"`
	Deadline    models.Date `json:"deadline"`
	Completed   *bool       `json:"completed"`
	ProjectID   int         `json:"projectId"`
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
