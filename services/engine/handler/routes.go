package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/pkg/websocket"
	httpHandler "github.com/piresc/vigilante/services/engine/handler/http"
)

// HTTPHandler combines all handlers for the engine service
type HTTPHandler struct {
	api         *httpHandler.Handler
	wsManager   *websocket.Manager
	redisClient *database.RedisClient
	cfg         *models.Config
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(
	api *httpHandler.Handler,
	wsManager *websocket.Manager,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *HTTPHandler {
	return &HTTPHandler{
		api:         api,
		wsManager:   wsManager,
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)

	e.GET("/ws/notifications", h.Notifications, auth, h.api.SyncEntitlement)

	v1 := e.Group("/v1", auth, h.api.SyncEntitlement)

	v1.POST("/positions", h.api.PushPosition)
	v1.POST("/positions/error", h.api.ReportPositionError)
	v1.GET("/proximity", h.api.GetProximity)
	v1.POST("/proximity/:id/dismiss", h.api.DismissEvent)

	v1.GET("/hazards", h.api.GetHazards)
	v1.DELETE("/hazards/:id", h.api.DeleteHazard)

	if h.redisClient != nil && h.cfg.Engine.AlertRateLimit > 0 {
		v1.POST("/alerts", h.api.SubmitAlert, middleware.UserRateLimiter(
			"alerts", h.cfg.Engine.AlertRateLimit, h.cfg.Engine.AlertRateWindow, h.redisClient))
	} else {
		v1.POST("/alerts", h.api.SubmitAlert)
	}

	v1.POST("/copilot", h.api.Copilot)
	v1.POST("/advice", h.api.Advice)

	v1.GET("/weather", h.api.GetWeather)
	v1.GET("/route", h.api.GetRoute)

	v1.GET("/preferences", h.api.GetPreferences)
	v1.PUT("/preferences", h.api.UpdatePreferences)

	v1.POST("/logout", h.api.Logout)
}

// Notifications streams markers and spoken notifications to the driver UI
func (h *HTTPHandler) Notifications(c echo.Context) error {
	return h.wsManager.HandleConnection(c, middleware.UserID(c))
}
