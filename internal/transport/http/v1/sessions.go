package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

const defaultMessageLimit = 50

// GetSessionMessages retrieves the latest messages for a session.
// GET /sessions/:session_id/messages
func (h *Handler) GetSessionMessages(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := defaultMessageLimit
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	messages, err := h.service.GetMessages(c.Request().Context(), sessionID, limit)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessionId": sessionID,
		"messages":  messages,
	})
}

// GetSession returns a session's context and message count.
// GET /sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	session, err := h.service.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return h.fail(c, err)
	}
	if session == nil {
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "session not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessionId":    session.SessionID,
		"createdAt":    session.CreatedAt,
		"updatedAt":    session.UpdatedAt,
		"context":      session.Context,
		"messageCount": len(session.Messages),
	})
}

// DeleteSession forgets a session.
// DELETE /sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	if err := h.service.DeleteSession(c.Request().Context(), c.Param("session_id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
