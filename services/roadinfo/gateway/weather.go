package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	httpclient "github.com/piresc/vigilante/internal/pkg/http"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/roadinfo"
)

// owmResponse is the subset of the OpenWeatherMap current weather payload we read
type owmResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

var rainyConditions = map[string]bool{
	"Rain":         true,
	"Drizzle":      true,
	"Thunderstorm": true,
}

type weatherGW struct {
	client  *httpclient.EnhancedClient
	baseURL string
	apiKey  string
}

// NewWeatherGW creates an OpenWeatherMap-compatible weather provider
func NewWeatherGW(client *httpclient.EnhancedClient, cfg models.WeatherConfig) roadinfo.WeatherProvider {
	return &weatherGW{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// CurrentWeather fetches the weather at a coordinate
func (g *weatherGW) CurrentWeather(ctx context.Context, lat, lng float64) models.WeatherSnapshot {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	query.Set("units", "metric")
	query.Set("appid", g.apiKey)
	endpoint := fmt.Sprintf("%s/weather?%s", g.baseURL, query.Encode())

	var resp owmResponse
	if err := g.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		logger.WarnCtx(ctx, "Weather provider unavailable", logger.Err(err))
		metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return models.UnknownWeather()
	}

	if len(resp.Weather) == 0 || resp.Weather[0].Main == "" || resp.Main.Temp == nil {
		logger.WarnCtx(ctx, "Weather provider returned an unexpected shape")
		metrics.ProviderRequests.WithLabelValues("weather", "malformed").Inc()
		return models.UnknownWeather()
	}

	metrics.ProviderRequests.WithLabelValues("weather", "ok").Inc()
	condition := resp.Weather[0].Main
	return models.WeatherSnapshot{
		Temperature: *resp.Main.Temp,
		Condition:   condition,
		IsRaining:   rainyConditions[condition],
		Known:       true,
	}
}
