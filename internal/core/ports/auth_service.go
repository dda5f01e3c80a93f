package ports

import (
	"context"

	"github.com/storekit/catalog-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Authenticate verifies the credentials without issuing anything.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Login authenticates and issues a bearer token whose abilities are the
	// user's role names at this moment (falling back to ["user"]). The bearer
	// value is returned exactly once and cannot be retrieved again.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the single token identified by its id.
	Logout(ctx context.Context, tokenID string) error
}
