package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

// GetHazards lists hazards around a coordinate, nearest first
func (h *Handler) GetHazards(c echo.Context) error {
	lat, lng, err := coordinateParams(c, "lat", "lng")
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	radius := h.radius
	if c.QueryParam("radius") != "" {
		radius, err = floatParam(c, "radius")
		if err != nil {
			return utils.AppErrorResponse(c, err)
		}
	}
	if radius <= 0 || radius > maxRadiusMeters {
		return utils.AppErrorResponse(c, apperrors.Validation("radius must be in (0, %d]", maxRadiusMeters))
	}

	return utils.SuccessResponse(c, http.StatusOK, "", h.hazardUC.Nearby(lat, lng, radius))
}

// DeleteHazard removes a hazard from the index. Drivers may remove their own
// alerts; everything else needs the admin claim.
func (h *Handler) DeleteHazard(c echo.Context) error {
	id := c.Param("id")
	userID := middleware.UserID(c)
	if err := h.hazardUC.RemoveBy(c.Request().Context(), id, userID, middleware.Admin(c)); err != nil {
		logger.WarnCtx(c.Request().Context(), "Hazard not removed",
			logger.UserID(userID),
			logger.HazardID(id),
			logger.Err(err))
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Hazard removed", nil)
}

// SubmitAlert reports a hazard at the driver's current position
func (h *Handler) SubmitAlert(c echo.Context) error {
	userID := middleware.UserID(c)

	var submission models.AlertSubmission
	if err := c.Bind(&submission); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	alert, err := h.engineUC.SubmitAlert(c.Request().Context(), userID, submission)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Alert rejected",
			logger.UserID(userID),
			logger.Err(err))
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Alert submitted", alert)
}
