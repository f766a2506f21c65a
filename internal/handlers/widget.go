package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/handlers/render"
	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/service/widget"
)

const (
	defaultNewsTopic     = "technology"
	defaultCryptoSymbols = "BTC,ETH"
)

type widgetService interface {
	GitHubEvents(ctx context.Context, username string) ([]widget.GitHubEvent, error)
	CityWeather(ctx context.Context, city string) (widget.Weather, error)
	TopicNews(ctx context.Context, topic string) ([]widget.NewsArticle, error)
	CryptoPrices(ctx context.Context, symbols []string) ([]widget.CryptoPrice, error)
	SiteStatuses(ctx context.Context, urls []string) ([]widget.SiteStatus, error)
}

// renderWidgetError maps fetch failures to responses. Upstream failures
// are the gateway's fault (502), everything else is ours.
func renderWidgetError(w http.ResponseWriter, l logger.Logger, err error) {
	var apiErr *apperrors.ExternalAPIError
	switch {
	case errors.As(err, &apiErr):
		l.Warn("upstream fetch failed", "provider", apiErr.Provider, "error", err)
		render.Error(w, fmt.Sprintf("Failed to fetch data from %s", apiErr.Provider), http.StatusBadGateway)
	default:
		l.Error("widget fetch failed", "error", err)
		render.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func handleGitHubWidget(svc widgetService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		if username == "" {
			render.Error(w, "username query parameter is required", http.StatusBadRequest)
			return
		}

		events, err := svc.GitHubEvents(r.Context(), username)
		if err != nil {
			renderWidgetError(w, l, err)
			return
		}
		render.JSON(w, events)
	})
}

func handleWeatherWidget(svc widgetService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city == "" {
			render.Error(w, "city query parameter is required", http.StatusBadRequest)
			return
		}

		weather, err := svc.CityWeather(r.Context(), city)
		if err != nil {
			renderWidgetError(w, l, err)
			return
		}
		render.JSON(w, weather)
	})
}

func handleNewsWidget(svc widgetService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")
		if topic == "" {
			topic = defaultNewsTopic
		}

		articles, err := svc.TopicNews(r.Context(), topic)
		if err != nil {
			renderWidgetError(w, l, err)
			return
		}
		render.JSON(w, articles)
	})
}

func handleCryptoWidget(svc widgetService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbols := r.URL.Query().Get("symbols")
		if symbols == "" {
			symbols = defaultCryptoSymbols
		}

		prices, err := svc.CryptoPrices(r.Context(), strings.Split(symbols, ","))
		if err != nil {
			renderWidgetError(w, l, err)
			return
		}
		render.JSON(w, prices)
	})
}

func handleStatusWidget(svc widgetService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls := r.URL.Query().Get("urls")
		if urls == "" {
			render.Error(w, "urls query parameter is required", http.StatusBadRequest)
			return
		}

		statuses, err := svc.SiteStatuses(r.Context(), strings.Split(urls, ","))
		if err != nil {
			renderWidgetError(w, l, err)
			return
		}
		render.JSON(w, statuses)
	})
}
