// Package auth registers users, checks their passwords and issues the bearer
// tokens the HTTP boundary verifies.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tally/internal/apperror"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/models"
)

// Service defines the authentication operations
type Service interface {
	Register(ctx context.Context, username, password string) (*models.Principal, string, error)
	Authenticate(ctx context.Context, username, password string) (*models.Principal, string, error)
	Verify(token string) (*models.Principal, error)
}

// repository defines the data access methods needed by the authenticator
type repository interface {
	CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
}

// Option configures the auth service
type Option func(*service)

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *service) {
		s.cost = cost
	}
}

type service struct {
	repo   repository
	tokens *Tokens
	cost   int
}

// NewService creates an authenticator backed by repo and tokens.
// tokens may be nil, in which case no tokens are issued or accepted.
func NewService(repo repository, tokens *Tokens, opts ...Option) Service {
	s := &service{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a USER account and returns a token for it
func (s *service) Register(ctx context.Context, username, password string) (*models.Principal, string, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, "", apperror.NewValidation(err)
	}

	taken, err := s.repo.UserExists(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", usernameTaken(username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, string(hash), models.RoleUser)
	if err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, "", usernameTaken(username)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(models.PrincipalFor(user))
}

// Authenticate checks the password and returns a fresh token.
// Unknown users and wrong passwords fail identically.
func (s *service) Authenticate(ctx context.Context, username, password string) (*models.Principal, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", invalidCredentials()
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", invalidCredentials()
	}

	return s.issue(models.PrincipalFor(user))
}

// Verify resolves a bearer token into the principal it was issued for
func (s *service) Verify(token string) (*models.Principal, error) {
	if s.tokens == nil {
		return nil, apperror.NewUnauthenticated(ErrMissingSecret, "Token verification is not configured")
	}
	p, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperror.NewUnauthenticated(err, "Invalid or expired token")
	}
	return p, nil
}

// issue returns an empty token when no signer is configured (local CLI use)
func (s *service) issue(p *models.Principal) (*models.Principal, string, error) {
	if s.tokens == nil {
		return p, "", nil
	}
	token, err := s.tokens.Issue(p)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

func validateCredentials(username, password string) error {
	if n := len(username); n < MinUsernameLength || n > MaxUsernameLength {
		return ErrUsernameLength
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func usernameTaken(username string) error {
	return apperror.NewConflict(ErrUsernameTaken, "A user with this username already exists : %s", username)
}

func invalidCredentials() error {
	return apperror.NewUnauthenticated(ErrInvalidCredentials, "Invalid username or password")
}
