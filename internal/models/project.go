package models

import "time"

// Project is a titled container of tasks owned by exactly one user.
// The owner is fixed at creation and never reassigned.
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GetID returns the project ID (used by the CLI quiet output)
func (p *Project) GetID() int {
	return p.ID
}
