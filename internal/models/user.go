package models

import "time"

// Role is the authorization role attached to a user account
type Role string

const (
	// RoleUser is the role given to every registered account
	RoleUser Role = "USER"
)

// User is a registered account. Usernames are unique and case-sensitive.
// PasswordHash is never serialized.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is a verified caller identity handed to the services by the
// boundary layer (HTTP middleware or CLI). A nil *Principal means the caller
// is not authenticated.
type Principal struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// PrincipalFor builds the principal that represents the given user
func PrincipalFor(u *User) *Principal {
	return &Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
