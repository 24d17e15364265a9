package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/engine"
)

// PushPosition accepts a sample from the device geolocation source
func (h *Handler) PushPosition(c echo.Context) error {
	userID := middleware.UserID(c)

	var pos models.Position
	if err := c.Bind(&pos); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}
	if err := engine.ValidatePosition(pos); err != nil {
		return utils.AppErrorResponse(c, err)
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = models.Now()
	}

	accepted := h.engineUC.PushPosition(userID, pos)
	if !accepted {
		logger.Debug("Out-of-order position dropped", logger.UserID(userID))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Position received", map[string]bool{"accepted": accepted})
}

// ReportPositionError records that the device lost its geolocation fix
func (h *Handler) ReportPositionError(c echo.Context) error {
	userID := middleware.UserID(c)

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}
	message := utils.Truncate(utils.SanitizeString(req.Message), 200)
	if message == "" {
		message = "unknown error"
	}

	h.engineUC.ReportPositionError(userID, message)
	return utils.SuccessResponse(c, http.StatusOK, "Error recorded", nil)
}

// GetProximity returns the driver's live proximity events
func (h *Handler) GetProximity(c echo.Context) error {
	userID := middleware.UserID(c)

	pos, stale := h.engineUC.CurrentPosition(userID)
	return utils.SuccessResponse(c, http.StatusOK, "", map[string]interface{}{
		"position": pos,
		"stale":    stale || pos == nil,
		"events":   h.engineUC.Proximity(userID),
	})
}

// DismissEvent hides a live event until its hazard leaves the radius
func (h *Handler) DismissEvent(c echo.Context) error {
	userID := middleware.UserID(c)
	hazardID := c.Param("id")

	if !h.engineUC.Dismiss(userID, hazardID) {
		return utils.NotFoundResponse(c, "no live event for hazard")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Event dismissed", nil)
}

// Logout ends the driver session and its AI session
func (h *Handler) Logout(c echo.Context) error {
	userID := middleware.UserID(c)
	ended := h.engineUC.Logout(userID)
	return utils.SuccessResponse(c, http.StatusOK, "Logged out", map[string]bool{"session_ended": ended})
}
