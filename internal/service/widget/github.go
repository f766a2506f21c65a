package widget

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type GitHubRepo struct {
	Name string `json:"name"`
}

type GitHubEvent struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Repo      GitHubRepo `json:"repo"`
	CreatedAt time.Time  `json:"created_at"`
}

// GitHubEvents returns the recent public activity of a GitHub user
func (s *Service) GitHubEvents(ctx context.Context, username string) ([]GitHubEvent, error) {
	key := "github:" + username

	return fetchThrough(ctx, s, key, githubTTL, func(ctx context.Context) ([]GitHubEvent, error) {
		endpoint := fmt.Sprintf("%s/users/%s/events/public", s.cfg.GitHubBaseURL, url.PathEscape(username))

		headers := map[string]string{
			"User-Agent": "insightboard",
			"Accept":     "application/vnd.github+json",
		}
		if s.cfg.GitHubToken != "" {
			headers["Authorization"] = "token " + s.cfg.GitHubToken
		}

		var events []GitHubEvent
		if err := s.getJSON(ctx, "github", endpoint, headers, &events); err != nil {
			return nil, err
		}
		return events, nil
	})
}
