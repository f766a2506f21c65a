package widget

import (
	"context"
	"fmt"
	"net/url"
)

type Weather struct {
	City        string  `json:"city"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// openWeatherResponse mirrors the parts of the OpenWeatherMap payload we
// care about. Absent fields keep their zero values.
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// CityWeather returns current conditions for a city in metric units
func (s *Service) CityWeather(ctx context.Context, city string) (Weather, error) {
	if s.cfg.OpenWeatherAPIKey == "" {
		return Weather{}, fmt.Errorf("weather: %w", ErrNotConfigured)
	}

	key := "weather:" + city

	return fetchThrough(ctx, s, key, weatherTTL, func(ctx context.Context) (Weather, error) {
		query := url.Values{}
		query.Set("q", city)
		query.Set("units", "metric")
		query.Set("appid", s.cfg.OpenWeatherAPIKey)
		endpoint := fmt.Sprintf("%s/data/2.5/weather?%s", s.cfg.OpenWeatherBaseURL, query.Encode())

		var raw openWeatherResponse
		if err := s.getJSON(ctx, "weather", endpoint, nil, &raw); err != nil {
			return Weather{}, err
		}

		weather := Weather{
			City:      raw.Name,
			Temp:      raw.Main.Temp,
			FeelsLike: raw.Main.FeelsLike,
			Humidity:  raw.Main.Humidity,
		}
		if len(raw.Weather) > 0 {
			weather.Description = raw.Weather[0].Description
			weather.Icon = raw.Weather[0].Icon
		}
		return weather, nil
	})
}
