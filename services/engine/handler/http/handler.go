package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/services/engine"
	"github.com/piresc/vigilante/services/hazard"
	"github.com/piresc/vigilante/services/preferences"
	"github.com/piresc/vigilante/services/roadinfo"
)

const (
	defaultRadiusMeters = 1000
	maxRadiusMeters     = 50000
)

// Handler serves the driver-facing HTTP API
type Handler struct {
	engineUC    engine.EngineUC
	hazardUC    hazard.HazardUC
	preferences preferences.PreferencesRepo
	weather     roadinfo.WeatherProvider
	route       roadinfo.RouteProvider
	radius      float64
}

// NewHandler creates the HTTP handler. A non-positive radius uses 1000 m.
func NewHandler(
	engineUC engine.EngineUC,
	hazardUC hazard.HazardUC,
	prefs preferences.PreferencesRepo,
	weather roadinfo.WeatherProvider,
	route roadinfo.RouteProvider,
	defaultRadius float64,
) *Handler {
	if defaultRadius <= 0 {
		defaultRadius = defaultRadiusMeters
	}
	return &Handler{
		engineUC:    engineUC,
		hazardUC:    hazardUC,
		preferences: prefs,
		weather:     weather,
		route:       route,
		radius:      defaultRadius,
	}
}

// SyncEntitlement hands the token's premium claim to the driver's session.
// It must run after JWTAuthMiddleware.
func (h *Handler) SyncEntitlement(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID := middleware.UserID(c); userID != "" {
			h.engineUC.SetEntitlement(userID, middleware.Premium(c))
		}
		return next(c)
	}
}

func floatParam(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, apperrors.Validation("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Validation("%s must be a number", name)
	}
	return v, nil
}

func coordinateParams(c echo.Context, latName, lngName string) (float64, float64, error) {
	lat, err := floatParam(c, latName)
	if err != nil {
		return 0, 0, err
	}
	lng, err := floatParam(c, lngName)
	if err != nil {
		return 0, 0, err
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, apperrors.Validation("coordinates out of range")
	}
	return lat, lng, nil
}
