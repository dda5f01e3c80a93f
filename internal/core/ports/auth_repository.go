package ports

import (
	"context"

	"github.com/storekit/catalog-api/internal/core/domain"
)

// UserRepository defines persistence for registered accounts. Email uniqueness
// is enforced by the store itself (unique index), not by the caller, so two
// concurrent registrations with the same address cannot both succeed.
type UserRepository interface {
	// Create inserts the user and returns the stored record with its id.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// RoleRepository resolves role assignments through the user_roles join.
type RoleRepository interface {
	// Seed creates the fixed role set ("admin", "user") when missing.
	Seed(ctx context.Context) error
	// RoleNamesForUser returns the role names assigned to one user. An empty
	// slice (no join rows) is not an error.
	RoleNamesForUser(ctx context.Context, userID string) ([]string, error)
	// RoleNamesByUser returns the role names of every user, keyed by user id.
	RoleNamesByUser(ctx context.Context) (map[string][]string, error)
	// Assign attaches a role to a user by role name.
	Assign(ctx context.Context, userID, roleName string) error
}

// TokenRepository is the allowlist behind bearer credentials. A bearer is only
// accepted while its record exists; Delete implements single-token revocation.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.AccessToken) error
	// Find returns domain.ErrTokenRevoked when no record matches the id.
	Find(ctx context.Context, id string) (*domain.AccessToken, error)
	Delete(ctx context.Context, id string) error
}
