package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "github.com/piresc/vigilante/internal/pkg/http"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newClient(provider string) *httpclient.EnhancedClient {
	core, _ := observer.New(zapcore.DebugLevel)
	return httpclient.NewEnhancedClient(logger.NewFromCore(core, "test"), provider, time.Second)
}

func TestWeatherGW_CurrentWeather(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected models.WeatherSnapshot
	}{
		{
			name:     "rain",
			status:   http.StatusOK,
			body:     `{"weather":[{"main":"Rain","description":"light rain"}],"main":{"temp":14.5}}`,
			expected: models.WeatherSnapshot{Temperature: 14.5, Condition: "Rain", IsRaining: true, Known: true},
		},
		{
			name:     "clear",
			status:   http.StatusOK,
			body:     `{"weather":[{"main":"Clear"}],"main":{"temp":22}}`,
			expected: models.WeatherSnapshot{Temperature: 22, Condition: "Clear", Known: true},
		},
		{
			name:     "missing temperature",
			status:   http.StatusOK,
			body:     `{"weather":[{"main":"Clear"}],"main":{}}`,
			expected: models.UnknownWeather(),
		},
		{
			name:     "not json",
			status:   http.StatusOK,
			body:     `<html>`,
			expected: models.UnknownWeather(),
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"cod":401}`,
			expected: models.UnknownWeather(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/weather", r.URL.Path)
				assert.Equal(t, "38.7223", r.URL.Query().Get("lat"))
				assert.Equal(t, "-9.1393", r.URL.Query().Get("lon"))
				assert.Equal(t, "key", r.URL.Query().Get("appid"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			gw := NewWeatherGW(newClient("weather"), models.WeatherConfig{BaseURL: srv.URL + "/", APIKey: "key"})
			assert.Equal(t, tt.expected, gw.CurrentWeather(context.Background(), 38.7223, -9.1393))
		})
	}
}

func TestRouteGW_Route(t *testing.T) {
	from := utils.GeoPoint{Latitude: 38.7223, Longitude: -9.1393}
	to := utils.GeoPoint{Latitude: 41.1579, Longitude: -8.6291}

	t.Run("found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)
			assert.Equal(t, "ors-key", r.Header.Get("Authorization"))

			var req orsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, [][2]float64{{-9.1393, 38.7223}, {-8.6291, 41.1579}}, req.Coordinates)

			_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[[-9.1393,38.7223],[-8.9,40.0],[-8.6291,41.1579]]},
				"properties":{"summary":{"distance":313000,"duration":10800}}}]}`))
		}))
		defer srv.Close()

		route := NewRouteGW(newClient("route"), models.RouteConfig{BaseURL: srv.URL, APIKey: "ors-key"}).
			Route(context.Background(), from, to)

		require.True(t, route.Found)
		assert.Equal(t, [2]float64{38.7223, -9.1393}, route.Geometry[0])
		assert.Len(t, route.Geometry, 3)
		assert.Equal(t, 313000.0, route.DistanceMeters)
		assert.Equal(t, 10800.0, route.DurationSeconds)
	})

	t.Run("no features", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"features":[]}`))
		}))
		defer srv.Close()

		route := NewRouteGW(newClient("route"), models.RouteConfig{BaseURL: srv.URL}).Route(context.Background(), from, to)
		assert.Equal(t, models.NoRoute(), route)
	})

	t.Run("provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		route := NewRouteGW(newClient("route"), models.RouteConfig{BaseURL: srv.URL}).Route(context.Background(), from, to)
		assert.False(t, route.Found)
	})
}
