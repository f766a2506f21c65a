package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/logger"
)

// Per provider cache lifetimes, picked by data volatility:
// uptime checks go stale fastest, news slowest
const (
	githubTTL  = 5 * time.Minute
	cryptoTTL  = 5 * time.Minute
	weatherTTL = 10 * time.Minute
	newsTTL    = 15 * time.Minute
	statusTTL  = 2 * time.Minute
)

const (
	fetchTimeout  = 10 * time.Second
	statusTimeout = 5 * time.Second
)

// ErrNotConfigured is returned when a provider requires an API key that
// was not set in configuration
var ErrNotConfigured = errors.New("provider API key not configured")

// Cache is the read-through/write-after store the fetch flow runs against
type Cache interface {
	// A miss is (false, nil). Read or decode failures are errors, but the
	// fetch flow treats them as a miss and continues to the live call.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Config struct {
	// Optional credentials. GitHub works anonymously (rate limited),
	// weather and news refuse to fetch without a key.
	GitHubToken       string
	OpenWeatherAPIKey string
	NewsAPIKey        string

	// Base URLs of third party APIs
	// If not set than defaults are used. Tests point them at local servers.
	GitHubBaseURL      string
	OpenWeatherBaseURL string
	NewsAPIBaseURL     string
	CoinGeckoBaseURL   string
}

// Widget data service: proxies third party APIs behind a shared
// cache-aside flow. One instance serves all providers.
type Service struct {
	cfg    Config
	cache  Cache
	client *http.Client
	logger logger.Logger
}

func NewService(cfg Config, cache Cache, l logger.Logger) (*Service, error) {
	if cache == nil {
		return nil, errors.New("cache must not be nil")
	}
	if l == nil {
		l = logger.NewNoOpLogger()
	}

	setDefault := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	setDefault(&cfg.GitHubBaseURL, "https://api.github.com")
	setDefault(&cfg.OpenWeatherBaseURL, "https://api.openweathermap.org")
	setDefault(&cfg.NewsAPIBaseURL, "https://newsapi.org")
	setDefault(&cfg.CoinGeckoBaseURL, "https://api.coingecko.com")

	return &Service{
		cfg:    cfg,
		cache:  cache,
		client: &http.Client{},
		logger: l,
	}, nil
}

// fetchThrough is the cache-aside flow shared by every provider:
// try the cache, fall back to the live fetch, write the result back with
// the provider TTL. Cache failures on either side never fail the request,
// they only cost the speed benefit. Fetch failures are never cached.
func fetchThrough[T any](ctx context.Context, s *Service, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		s.logger.Warn("cache read failed, continue to live fetch", "key", key, "error", err)
	case found:
		s.logger.Debug("cache hit", "key", key)
		return cached, nil
	}

	result, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := s.cache.Set(ctx, key, result, ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}

	return result, nil
}

// getJSON performs the outbound call and decodes the 2xx response body.
// Every failure mode maps to *apperrors.ExternalAPIError.
func (s *Service) getJSON(ctx context.Context, provider string, url string, headers map[string]string, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.NewExternalAPIError(provider, 0, fmt.Errorf("failed to create request: %w", err))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.NewExternalAPIError(provider, 0, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apperrors.NewExternalAPIError(provider, resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return apperrors.NewExternalAPIError(provider, 0, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}
