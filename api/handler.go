// Package api provides HTTP handlers for the twin service.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/twinhq/twinforge/domain"
	"github.com/twinhq/twinforge/observability"
	"github.com/twinhq/twinforge/twin"
)

// Handler handles HTTP requests.
type Handler struct {
	svc *twin.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *twin.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/conversations/:user_id", h.GetConversation)
	e.POST("/v1/conversations/:user_id/messages", h.PostMessage)
	e.GET("/v1/conversations/:user_id/profile", h.GetProfile)
	e.PUT("/v1/conversations/:user_id/profile", h.PutProfile)
	e.GET("/v1/conversations/:user_id/persona", h.GetPersona)
	e.POST("/v1/conversations/:user_id/persona/reply", h.PostPersonaReply)

	e.GET("/v1/questions/predefined", h.GetPredefinedQuestions)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler()))
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// writeError maps domain errors to HTTP responses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCompletionUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "assistant is temporarily unavailable, please resend your message",
		})
	case errors.Is(err, domain.ErrVersionConflict):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "conversation was updated concurrently, please retry",
		})
	case errors.Is(err, domain.ErrPreconditionFailed):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "profile has not been extracted yet",
		})
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrPersonaNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
