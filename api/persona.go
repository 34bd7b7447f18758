package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetPersona returns the compiled persona configuration.
// GET /v1/conversations/:user_id/persona
func (h *Handler) GetPersona(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	persona, err := h.svc.GetPersonaConfig(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"persona": persona})
}

// PostPersonaReply answers an incoming message as the user's digital
// version.
// POST /v1/conversations/:user_id/persona/reply
func (h *Handler) PostPersonaReply(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	reply, err := h.svc.RespondAsPersona(ctx, userID, req.Message)
	if err != nil {
		log.Printf("ERROR: failed to generate persona reply for user %s: %v", userID, err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
