package ports

import (
	"context"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// AuthService implements signup and credential verification.
type AuthService interface {
	// Signup registers a new account. Returns domain.ErrEmailTaken when the
	// email is already registered and domain.ErrUsernameTaken when the
	// username is in use.
	Signup(ctx context.Context, email, username, password string) (*domain.User, error)
	// Login verifies username+password and returns the matching user, or
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// Resolve looks a user up by id for display purposes.
	Resolve(ctx context.Context, id string) (*domain.User, error)
}
