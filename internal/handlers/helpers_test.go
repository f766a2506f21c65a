package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/models"
	"github.com/nkiryanov/insightboard/internal/repository/postgres"
	"github.com/nkiryanov/insightboard/internal/service/auth"
	"github.com/nkiryanov/insightboard/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/insightboard/internal/service/dashboard"
	"github.com/nkiryanov/insightboard/internal/service/widget"
	"github.com/nkiryanov/insightboard/internal/testutil"
)

// widgetStub satisfies the widget routes for tests that do not exercise them
type widgetStub struct {
	githubFn  func(ctx context.Context, username string) ([]widget.GitHubEvent, error)
	weatherFn func(ctx context.Context, city string) (widget.Weather, error)
	newsFn    func(ctx context.Context, topic string) ([]widget.NewsArticle, error)
	cryptoFn  func(ctx context.Context, symbols []string) ([]widget.CryptoPrice, error)
	statusFn  func(ctx context.Context, urls []string) ([]widget.SiteStatus, error)
}

func (s widgetStub) GitHubEvents(ctx context.Context, username string) ([]widget.GitHubEvent, error) {
	return s.githubFn(ctx, username)
}

func (s widgetStub) CityWeather(ctx context.Context, city string) (widget.Weather, error) {
	return s.weatherFn(ctx, city)
}

func (s widgetStub) TopicNews(ctx context.Context, topic string) ([]widget.NewsArticle, error) {
	return s.newsFn(ctx, topic)
}

func (s widgetStub) CryptoPrices(ctx context.Context, symbols []string) ([]widget.CryptoPrice, error) {
	return s.cryptoFn(ctx, symbols)
}

func (s widgetStub) SiteStatuses(ctx context.Context, urls []string) ([]widget.SiteStatus, error) {
	return s.statusFn(ctx, urls)
}

// identityStub authenticates every request as a fixed identity
type identityStub struct {
	identity models.Identity
}

func (s identityStub) Register(context.Context, string, string) (models.User, models.IssuedToken, error) {
	panic("not expected to be called")
}

func (s identityStub) Login(context.Context, string, string) (models.User, models.IssuedToken, error) {
	panic("not expected to be called")
}

func (s identityStub) IdentityFromRequest(context.Context, *http.Request) (models.Identity, error) {
	return s.identity, nil
}

// withServer runs fn against a full router backed by production services
// inside a rolled back transaction
func withServer(dbpool *pgxpool.Pool, t *testing.T, widgets widgetService, fn func(url string, authService *auth.AuthService)) {
	t.Helper()

	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)

		tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret"})
		require.NoError(t, err, "token manager should be created without errors")

		authService, err := auth.NewService(auth.Config{}, tokenManager, storage.User())
		require.NoError(t, err, "auth service should be created without errors")

		dashboardService, err := dashboard.NewService(storage.Dashboard())
		require.NoError(t, err, "dashboard service should be created without errors")

		if widgets == nil {
			widgets = widgetStub{}
		}

		router := NewRouter(authService, storage.User(), dashboardService, widgets, logger.NewNoOpLogger())
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, authService)
	})
}

// doJSON fires a request with an optional bearer token and returns the
// response with its body read
func doJSON(t *testing.T, method, url, token, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "should build request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "should make request")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "should read response body")
	defer resp.Body.Close() // nolint:errcheck

	return resp, string(raw)
}

// registerUser creates a user through the service and returns its token
func registerUser(t *testing.T, authService *auth.AuthService, email string) string {
	t.Helper()

	_, token, err := authService.Register(t.Context(), email, "StrongEnoughPassword")
	require.NoError(t, err, "should register user")
	return token.Value
}
