package roadinfo

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

// WeatherProvider returns current weather. Failures collapse to an unknown snapshot.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lng float64) models.WeatherSnapshot
}

// RouteProvider returns a driving route. Failures collapse to "no route".
type RouteProvider interface {
	Route(ctx context.Context, from, to utils.GeoPoint) models.Route
}
