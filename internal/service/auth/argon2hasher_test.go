package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Argon2Hasher(t *testing.T) {
	t.Parallel()

	h := Argon2Hasher{}

	t.Run("hash password", func(t *testing.T) {
		got, err := h.Hash("password")
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(got, "$argon2id$v=19$"), "hash should be PHC encoded argon2id")
		require.Len(t, strings.Split(got, "$"), 6, "encoding should carry params, salt and digest")
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		first, err := h.Hash("password")
		require.NoError(t, err)
		second, err := h.Hash("password")
		require.NoError(t, err)

		require.NotEqual(t, first, second, "salt should be random per hash")
	})

	t.Run("verify password ok", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		ok, err := h.Verify(hash, "password")

		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("wrong password is false not error", func(t *testing.T) {
		hash, err := h.Hash("password")
		require.NoError(t, err)

		ok, err := h.Verify(hash, "wrong")

		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("malformed hash is error", func(t *testing.T) {
		tests := []struct {
			name string
			hash string
		}{
			{"empty", ""},
			{"not phc", "plainhash"},
			{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$ZGlnZXN0"},
			{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$ZGlnZXN0"},
			{"broken params", "$argon2id$v=19$m=what$c2FsdA$ZGlnZXN0"},
			{"broken salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$ZGlnZXN0"},
			{"broken digest", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := h.Verify(tt.hash, "password")

				require.ErrorIs(t, err, ErrMalformedHash)
			})
		}
	})
}
