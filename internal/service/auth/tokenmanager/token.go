package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/models"
)

const (
	// Access token lives a week. There is no refresh or revocation path:
	// a leaked token stays valid until natural expiry.
	defaultTokenTTL      = 7 * 24 * time.Hour
	defaultSigningMethod = "HS256"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign access token payload
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Token lifetime
	// If not set than default is used
	TTL time.Duration
}

type TokenManager struct {
	key string
	alg jwt.SigningMethod
	ttl time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	if cfg.TTL == 0 {
		cfg.TTL = defaultTokenTTL
	}

	return &TokenManager{
		key: cfg.SecretKey,
		alg: jwt.GetSigningMethod(cfg.Alg),
		ttl: cfg.TTL,
	}, nil
}

// Issue generates signed stateless token for the user
func (m *TokenManager) Issue(user models.User) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			Email: user.Email,
		},
	)
	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Parse validates the token and returns the identity carried in claims.
// Any failure (structure, signature, expiry, subject) maps to the single
// apperrors.ErrInvalidToken so callers can't leak which check failed.
func (m *TokenManager) Parse(raw string) (models.Identity, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Identity{}, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Identity{}, apperrors.ErrInvalidToken
	}

	return models.Identity{UserID: userID, Email: claims.Email}, nil
}
