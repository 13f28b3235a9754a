package auth

import "errors"

// Domain errors for the authenticator
var (
	ErrUsernameLength     = errors.New("username must be between 3 and 50 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password cannot exceed 72 bytes")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSecret      = errors.New("jwt secret is not configured")
)

// Credential bounds
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	// bcrypt refuses longer input
	MaxPasswordLength = 72
)
