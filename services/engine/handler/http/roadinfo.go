package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/utils"
)

// GetWeather returns the weather at a coordinate; provider failures come back as unknown
func (h *Handler) GetWeather(c echo.Context) error {
	lat, lng, err := coordinateParams(c, "lat", "lng")
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", h.weather.CurrentWeather(c.Request().Context(), lat, lng))
}

// GetRoute returns a driving route between two coordinates
func (h *Handler) GetRoute(c echo.Context) error {
	fromLat, fromLng, err := coordinateParams(c, "from_lat", "from_lng")
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	toLat, toLng, err := coordinateParams(c, "to_lat", "to_lng")
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	route := h.route.Route(c.Request().Context(),
		utils.GeoPoint{Latitude: fromLat, Longitude: fromLng},
		utils.GeoPoint{Latitude: toLat, Longitude: toLng})
	return utils.SuccessResponse(c, http.StatusOK, "", route)
}
