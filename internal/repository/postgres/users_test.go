package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Helper to run tests with its own UserRepo in transaction
	// When test end rollback
	withTx := func(dbpool *pgxpool.Pool, t *testing.T, testFunc func(*UserRepo)) {
		testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
			testFunc(&UserRepo{DB: tx})
		})
	}

	t.Run("create user ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			user, err := r.CreateUser(t.Context(), "a@b.com", "hashedpassword123")

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID, "ID should be generated")
			assert.Equal(t, "a@b.com", user.Email)
			assert.Equal(t, "hashedpassword123", user.PasswordHash)
			assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create user duplicate email fails", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.CreateUser(t.Context(), "dup@b.com", "hashedpassword123")
			require.NoError(t, err)

			_, err = r.CreateUser(t.Context(), "dup@b.com", "anotherhashedpassword")
			assert.Error(t, err, "Should fail on duplicate email")
			assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists, "if user exists must return well defined error")
		})
	})

	t.Run("get user by id ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), "findbyid@b.com", "hashedpassword123")
			require.NoError(t, err)

			got, err := r.GetUserByID(t.Context(), created.ID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Email, got.Email)
			assert.Equal(t, created.PasswordHash, got.PasswordHash)
			assert.Equal(t, created.CreatedAt, got.CreatedAt)
		})
	})

	t.Run("get user by id not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.GetUserByID(t.Context(), uuid.New())

			assert.Error(t, err, "Should return error for non-existent user")
			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})

	t.Run("get user by email ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), "findbyemail@b.com", "hashedpassword123")
			require.NoError(t, err)

			got, err := r.GetUserByEmail(t.Context(), created.Email)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Email, got.Email)
		})
	})

	t.Run("get user by email not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.GetUserByEmail(t.Context(), "nobody@b.com")

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})
}
