package widget

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type SiteStatus struct {
	URL       string `json:"url"`
	Status    string `json:"status"`
	Code      int    `json:"code,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// SiteStatuses probes each URL with a GET and reports reachability and
// latency. A probe that fails or times out marks the site down, it does
// not fail the whole request.
func (s *Service) SiteStatuses(ctx context.Context, urls []string) ([]SiteStatus, error) {
	targets := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, u)
		}
	}

	key := "status:" + strings.Join(targets, ",")

	return fetchThrough(ctx, s, key, statusTTL, func(ctx context.Context) ([]SiteStatus, error) {
		statuses := make([]SiteStatus, 0, len(targets))
		for _, target := range targets {
			statuses = append(statuses, s.probe(ctx, target))
		}
		return statuses, nil
	})
}

func (s *Service) probe(ctx context.Context, target string) SiteStatus {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return SiteStatus{URL: target, Status: "down"}
	}

	resp, err := s.client.Do(req)
	latency := time.Since(started).Milliseconds()
	if err != nil {
		return SiteStatus{URL: target, Status: "down", LatencyMS: latency}
	}
	defer resp.Body.Close() // nolint:errcheck

	status := "up"
	if resp.StatusCode >= http.StatusBadRequest {
		status = "down"
	}

	return SiteStatus{
		URL:       target,
		Status:    status,
		Code:      resp.StatusCode,
		LatencyMS: latency,
	}
}
