package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/preferences"
)

// GetPreferences returns the driver's settings
func (h *Handler) GetPreferences(c echo.Context) error {
	userID := middleware.UserID(c)

	prefs, err := h.preferences.Get(c.Request().Context(), userID)
	if err != nil {
		logger.ErrorCtx(c.Request().Context(), "Failed to get preferences",
			logger.UserID(userID),
			logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "preferences unavailable")
	}
	prefs.IsPremiumEntitled = middleware.Premium(c)
	return utils.SuccessResponse(c, http.StatusOK, "", prefs)
}

// UpdatePreferences replaces the driver's settings. The premium flag is
// taken from the token; a value in the body is ignored.
func (h *Handler) UpdatePreferences(c echo.Context) error {
	userID := middleware.UserID(c)

	prefs := models.DefaultPreferences()
	if err := c.Bind(&prefs); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}
	prefs.IsPremiumEntitled = middleware.Premium(c)
	if err := preferences.Validate(prefs); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.preferences.Save(c.Request().Context(), userID, prefs); err != nil {
		logger.ErrorCtx(c.Request().Context(), "Failed to save preferences",
			logger.UserID(userID),
			logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "preferences unavailable")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Preferences saved", prefs)
}
