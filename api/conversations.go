package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetConversation returns the transcript and status for a user.
// GET /v1/conversations/:user_id
func (h *Handler) GetConversation(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	history, err := h.svc.FetchHistory(ctx, userID)
	if err != nil {
		log.Printf("ERROR: failed to fetch history: %v", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, history)
}

// PostMessage drives one dialogue turn.
// POST /v1/conversations/:user_id/messages
func (h *Handler) PostMessage(c echo.Context) error {
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

	result, err := h.svc.SendUserMessage(ctx, userID, req.Message)
	if err != nil {
		log.Printf("ERROR: failed to process turn for user %s: %v", userID, err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetProfile returns the extracted profile.
// GET /v1/conversations/:user_id/profile
func (h *Handler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	profile, err := h.svc.GetProfile(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"profile": profile})
}

// PutProfile replaces the profile with externally edited structured
// facts and recompiles the persona.
// PUT /v1/conversations/:user_id/profile
func (h *Handler) PutProfile(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	var req struct {
		Facts map[string]string `json:"facts"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.Facts) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "facts are required"})
	}

	profile, err := h.svc.UpdateProfileFacts(ctx, userID, req.Facts)
	if err != nil {
		log.Printf("ERROR: failed to update profile for user %s: %v", userID, err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"profile": profile})
}
