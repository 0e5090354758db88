package users

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for account operations.
type System interface {
	Handler() *Handler

	// Signup creates an account with a bcrypt password hash and sends the
	// welcome email.
	Signup(ctx context.Context, cmd SignupCommand) (*User, error)

	// Authenticate returns the account matching email and password, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	Find(ctx context.Context, id uuid.UUID) (*User, error)

	// All returns every account, oldest first.
	All(ctx context.Context) ([]User, error)
}
