package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/ports"
)

// tokenName labels issued tokens, mirroring the client that requests them.
const tokenName = "api-product"

// AuthService implements registration, login, and bearer-token issuance.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	tokens    ports.TokenRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, roles: roles, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(name) > 255 {
		return nil, fmt.Errorf("%w: name must not exceed 255 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password; existence stays hidden.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	bearer, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return bearer, user, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.tokens.Delete(ctx, tokenID)
}

// issueToken snapshots the user's role names into a signed bearer and records
// its id in the token allowlist. Role changes after this point do not affect
// the already-issued credential.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	abilities, err := s.roles.RoleNamesForUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(abilities) == 0 {
		abilities = []string{domain.RoleUser}
	}

	record := &domain.AccessToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      tokenName,
		Abilities: abilities,
		CreatedAt: time.Now().UTC(),
	}

	claims := jwt.MapClaims{
		"sub":       user.ID,
		"jti":       record.ID,
		"abilities": abilities,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	// Sign before persisting: a failure on either step must not leave an
	// allowlist row without a bearer that references it.
	bearer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}
	return bearer, nil
}
