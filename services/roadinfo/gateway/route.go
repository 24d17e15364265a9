package gateway

import (
	"context"
	"strings"

	httpclient "github.com/piresc/vigilante/internal/pkg/http"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/roadinfo"
)

const directionsPath = "/v2/directions/driving-car/geojson"

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"` // [lng, lat]
}

type orsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

type routeGW struct {
	client  *httpclient.EnhancedClient
	baseURL string
	apiKey  string
}

// NewRouteGW creates an OpenRouteService-compatible route provider
func NewRouteGW(client *httpclient.EnhancedClient, cfg models.RouteConfig) roadinfo.RouteProvider {
	return &routeGW{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Route fetches a driving route between two points
func (g *routeGW) Route(ctx context.Context, from, to utils.GeoPoint) models.Route {
	payload := orsRequest{Coordinates: [][2]float64{
		{from.Longitude, from.Latitude},
		{to.Longitude, to.Latitude},
	}}
	headers := map[string]string{"Authorization": g.apiKey}

	var resp orsResponse
	if err := g.client.PostJSON(ctx, g.baseURL+directionsPath, headers, payload, &resp); err != nil {
		logger.WarnCtx(ctx, "Route provider failed", logger.Err(err))
		metrics.ProviderRequests.WithLabelValues("route", "error").Inc()
		return models.NoRoute()
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		metrics.ProviderRequests.WithLabelValues("route", "no_route").Inc()
		return models.NoRoute()
	}

	feature := resp.Features[0]
	geometry := make([][2]float64, 0, len(feature.Geometry.Coordinates))
	for _, c := range feature.Geometry.Coordinates {
		if len(c) < 2 {
			metrics.ProviderRequests.WithLabelValues("route", "malformed").Inc()
			return models.NoRoute()
		}
		geometry = append(geometry, [2]float64{c[1], c[0]})
	}

	metrics.ProviderRequests.WithLabelValues("route", "ok").Inc()
	return models.Route{
		Found:           true,
		Geometry:        geometry,
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
	}
}
