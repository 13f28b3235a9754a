package models

import "time"

// Task is a unit of work attached to exactly one project.
// Tasks live and die with their project: deleting the project deletes them.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    Date      `json:"deadline"`
	Completed   bool      `json:"completed"`
	ProjectID   int       `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetID returns the task ID (used by the CLI quiet output)
func (t *Task) GetID() int {
	return t.ID
}
