package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/vigilante/internal/pkg/middleware"
	"github.com/piresc/vigilante/internal/utils"
)

// Copilot runs a manual voice command. Failures still carry the localized
// phrase the app reads out.
func (h *Handler) Copilot(c echo.Context) error {
	userID := middleware.UserID(c)

	var req struct {
		Utterance string `json:"utterance"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	reply := h.engineUC.Manual(c.Request().Context(), userID, req.Utterance)
	if reply.Err != nil {
		return utils.ErrorResponseHandler(c, utils.StatusForError(reply.Err), reply.Text)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", reply)
}

// Advice answers a road-traffic legal question
func (h *Handler) Advice(c echo.Context) error {
	userID := middleware.UserID(c)

	var req struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	answer, err := h.engineUC.Advice(c.Request().Context(), userID, req.Query)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", map[string]string{"answer": answer})
}
