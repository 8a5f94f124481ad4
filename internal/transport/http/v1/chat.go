package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// Chat answers one user turn.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.service.HandleTurn(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// TrackOrder stores an order on the session and returns its status.
// POST /track-order
func (h *Handler) TrackOrder(c echo.Context) error {
	var req domain.TrackOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.service.TrackOrder(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
