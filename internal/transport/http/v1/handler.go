// Package v1 provides the HTTP handlers used by the chat widget.
package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes registers the widget routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.POST("/track-order", h.TrackOrder)

	// Transcript API for support agents
	e.GET("/sessions/:session_id", h.GetSession)
	e.GET("/sessions/:session_id/messages", h.GetSessionMessages)
	e.DELETE("/sessions/:session_id", h.DeleteSession)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// fail maps a service error onto a response. Validation problems are echoed
// back; everything else is logged and replaced with a safe message.
func (h *Handler) fail(c echo.Context, err error) error {
	if domain.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: err.Error()})
	}
	h.logger.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: domain.InternalErrorMessage})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "invalid request body"})
}
