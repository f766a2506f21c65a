package widget

import (
	"context"
	"fmt"
	"net/url"
)

type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	ImageURL    string `json:"image_url,omitempty"`
}

type newsAPIResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		URLToImage  string `json:"urlToImage"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TopicNews returns the ten most recent articles on a topic
func (s *Service) TopicNews(ctx context.Context, topic string) ([]NewsArticle, error) {
	if s.cfg.NewsAPIKey == "" {
		return nil, fmt.Errorf("news: %w", ErrNotConfigured)
	}

	key := "news:" + topic

	return fetchThrough(ctx, s, key, newsTTL, func(ctx context.Context) ([]NewsArticle, error) {
		query := url.Values{}
		query.Set("q", topic)
		query.Set("pageSize", "10")
		query.Set("sortBy", "publishedAt")
		endpoint := fmt.Sprintf("%s/v2/everything?%s", s.cfg.NewsAPIBaseURL, query.Encode())

		headers := map[string]string{"X-Api-Key": s.cfg.NewsAPIKey}

		var raw newsAPIResponse
		if err := s.getJSON(ctx, "news", endpoint, headers, &raw); err != nil {
			return nil, err
		}

		articles := make([]NewsArticle, 0, len(raw.Articles))
		for _, a := range raw.Articles {
			source := a.Source.Name
			if source == "" {
				source = "Unknown"
			}
			articles = append(articles, NewsArticle{
				Title:       a.Title,
				Description: a.Description,
				URL:         a.URL,
				Source:      source,
				PublishedAt: a.PublishedAt,
				ImageURL:    a.URLToImage,
			})
		}
		return articles, nil
	})
}
