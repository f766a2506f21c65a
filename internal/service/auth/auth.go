package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/models"
	"github.com/nkiryanov/insightboard/internal/repository"
)

const authScheme = "Bearer"

// Manager to issue and verify stateless access tokens
type TokenManager interface {
	Issue(user models.User) (models.IssuedToken, error)
	Parse(raw string) (models.Identity, error)
}

type Config struct {
	// Hasher to use during user registration or login process
	// Argon2 hasher is used if not set
	Hasher PasswordHasher
}

// Auth service
type AuthService struct {
	// hasher to hash or verify user passwords
	hasher PasswordHasher

	// Manager to issue and parse tokens
	token TokenManager

	// Repository to access long term user data
	userRepo repository.UserRepo
}

func NewService(cfg Config, token TokenManager, userRepo repository.UserRepo) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if token == nil || userRepo == nil {
		return nil, errors.New("token manager and user repo must not be nil")
	}

	return &AuthService{
		hasher:   hasher,
		token:    token,
		userRepo: userRepo,
	}, nil
}

// Register creates user with hashed password and issues first token
// Returns apperrors.ErrUserAlreadyExists if email is taken
func (s *AuthService) Register(ctx context.Context, email string, password string) (models.User, models.IssuedToken, error) {
	var token models.IssuedToken

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, token, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, email, hash)
	if err != nil {
		return models.User{}, token, err
	}

	token, err = s.token.Issue(user)
	if err != nil {
		return models.User{}, token, fmt.Errorf("token could not be generated. Err: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a fresh token
// Unknown email and wrong password both map to apperrors.ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, models.IssuedToken, error) {
	var token models.IssuedToken

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, token, apperrors.ErrInvalidCredentials
		}
		return models.User{}, token, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return models.User{}, token, fmt.Errorf("can't verify password. Err: %w", err)
	}
	if !ok {
		return models.User{}, token, apperrors.ErrInvalidCredentials
	}

	token, err = s.token.Issue(user)
	if err != nil {
		return models.User{}, token, fmt.Errorf("token could not be generated. Err: %w", err)
	}

	return user, token, nil
}

// IdentityFromRequest extracts the bearer token from the request and
// verifies it. Pure function of the header and token manager: no storage
// lookups, no shared state. Missing or malformed header and any token
// failure all map to apperrors.ErrInvalidToken.
func (s *AuthService) IdentityFromRequest(ctx context.Context, r *http.Request) (models.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.Identity{}, apperrors.ErrInvalidToken
	}

	raw, found := strings.CutPrefix(header, authScheme+" ")
	if !found || raw == "" {
		return models.Identity{}, apperrors.ErrInvalidToken
	}

	return s.token.Parse(raw)
}
