package auth

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/repository/postgres"
	"github.com/nkiryanov/insightboard/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/insightboard/internal/testutil"
)

func Test_AuthService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Begin new db transaction and create new AuthService
	// Rollback transaction when test stops
	withTx := func(dbpool *pgxpool.Pool, t *testing.T, fn func(s *AuthService)) {
		testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
			userRepo := &postgres.UserRepo{DB: tx}

			manager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret-key"})
			require.NoError(t, err, "token manager should be created without errors")

			s, err := NewService(Config{}, manager, userRepo)
			require.NoError(t, err, "auth service couldn't be started")

			fn(s)
		})
	}

	t.Run("new service defaults", func(t *testing.T) {
		manager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "secret"})
		require.NoError(t, err)

		s, err := NewService(Config{}, manager, &postgres.UserRepo{DB: pg.Pool})
		require.NoError(t, err, "auth service should be created without errors")

		require.Equal(t, Argon2Hasher{}, s.hasher, "default hasher should be argon2")
	})

	t.Run("new service requires deps", func(t *testing.T) {
		_, err := NewService(Config{}, nil, nil)
		require.Error(t, err)
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("new user ok", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				user, token, err := s.Register(t.Context(), "a@b.com", "password123")

				require.NoError(t, err, "registering new user should be ok")
				require.Equal(t, "a@b.com", user.Email)
				require.NotEmpty(t, token.Value, "token should not be empty")
				require.NotEqual(t, "password123", user.PasswordHash, "password must be stored hashed")
			})
		})

		t.Run("fail if user exists", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				_, _, err := s.Register(t.Context(), "a@b.com", "password123")
				require.NoError(t, err)

				_, _, err = s.Register(t.Context(), "a@b.com", "other-password")

				require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
			})
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("ok with fresh token", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				registered, registerToken, err := s.Register(t.Context(), "a@b.com", "password123")
				require.NoError(t, err)

				user, loginToken, err := s.Login(t.Context(), "a@b.com", "password123")

				require.NoError(t, err)
				require.Equal(t, registered.ID, user.ID)
				require.NotEmpty(t, loginToken.Value)
				require.NotEqual(t, registerToken.Value, loginToken.Value, "each login should issue its own token")
			})
		})

		t.Run("wrong password", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				_, _, err := s.Register(t.Context(), "a@b.com", "password123")
				require.NoError(t, err)

				_, _, err = s.Login(t.Context(), "a@b.com", "wrong-password")

				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			})
		})

		t.Run("unknown email maps to same error", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				_, _, err := s.Login(t.Context(), "nobody@b.com", "password123")

				require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
			})
		})
	})

	t.Run("IdentityFromRequest", func(t *testing.T) {
		newRequest := func(t *testing.T, header string) *http.Request {
			r, err := http.NewRequest(http.MethodGet, "/api/me", nil)
			require.NoError(t, err)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			return r
		}

		t.Run("valid bearer token", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				user, token, err := s.Register(t.Context(), "a@b.com", "password123")
				require.NoError(t, err)

				identity, err := s.IdentityFromRequest(t.Context(), newRequest(t, "Bearer "+token.Value))

				require.NoError(t, err)
				require.Equal(t, user.ID, identity.UserID)
				require.Equal(t, user.Email, identity.Email)
			})
		})

		t.Run("rejects bad requests uniformly", func(t *testing.T) {
			withTx(pg.Pool, t, func(s *AuthService) {
				_, token, err := s.Register(t.Context(), "a@b.com", "password123")
				require.NoError(t, err)

				tests := []struct {
					name   string
					header string
				}{
					{"no header", ""},
					{"wrong scheme", "Basic " + token.Value},
					{"no token after scheme", "Bearer "},
					{"garbage token", "Bearer garbage"},
				}

				for _, tt := range tests {
					t.Run(tt.name, func(t *testing.T) {
						_, err := s.IdentityFromRequest(t.Context(), newRequest(t, tt.header))

						require.ErrorIs(t, err, apperrors.ErrInvalidToken)
					})
				}
			})
		})
	})
}
