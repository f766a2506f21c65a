package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/insightboard/internal/service/auth"
	"github.com/nkiryanov/insightboard/internal/testutil"
)

func Test_AuthHandlers(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("register ok", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/register", "",
				`{"email": "nk@example.org", "password": "StrongEnoughPassword"}`)

			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

			var parsed struct {
				Token string `json:"token"`
				User  struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				} `json:"user"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &parsed))
			assert.NotEmpty(t, parsed.Token, "token should be issued on register")
			assert.NotEmpty(t, parsed.User.ID)
			assert.Equal(t, "nk@example.org", parsed.User.Email)
		})
	})

	t.Run("register duplicate email", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, authService *auth.AuthService) {
			registerUser(t, authService, "nk@example.org")

			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/register", "",
				`{"email": "nk@example.org", "password": "StrongEnoughPassword"}`)

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"error": "Email already registered"}`, body)
		})
	})

	t.Run("register invalid payload", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/register", "",
				`{"email": "not-an-email", "password": "short"}`)

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", body)
		})
	})

	t.Run("login ok", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, authService *auth.AuthService) {
			registerUser(t, authService, "nk@example.org")

			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/login", "",
				`{"email": "nk@example.org", "password": "StrongEnoughPassword"}`)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var parsed struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &parsed))
			assert.NotEmpty(t, parsed.Token)
		})
	})

	t.Run("login wrong password", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, authService *auth.AuthService) {
			registerUser(t, authService, "nk@example.org")

			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/login", "",
				`{"email": "nk@example.org", "password": "WrongPassword"}`)

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"error": "Invalid credentials"}`, body)
		})
	})

	t.Run("login unknown email same error", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodPost, url+"/api/auth/login", "",
				`{"email": "nobody@example.org", "password": "StrongEnoughPassword"}`)

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"error": "Invalid credentials"}`, body)
		})
	})

	t.Run("me returns current user", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, authService *auth.AuthService) {
			token := registerUser(t, authService, "nk@example.org")

			resp, body := doJSON(t, http.MethodGet, url+"/api/me", token, "")

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			assert.Contains(t, body, "nk@example.org")
		})
	})

	t.Run("me without token", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodGet, url+"/api/me", "", "")

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"error": "Unauthorized"}`, body)
		})
	})

	t.Run("me with garbage token", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodGet, url+"/api/me", "not.a.token", "")

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"error": "Unauthorized"}`, body)
		})
	})

	t.Run("healthz open without auth", func(t *testing.T) {
		withServer(pg.Pool, t, nil, func(url string, _ *auth.AuthService) {
			resp, body := doJSON(t, http.MethodGet, url+"/healthz", "", "")

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"status": "ok"}`, body)
		})
	})
}
