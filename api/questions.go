package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Question is a predefined interview starter shown to users before the
// dialogue begins.
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

var predefinedQuestions = []Question{
	{ID: 1, Text: "What's your name?", Category: "personal"},
	{ID: 2, Text: "What do you do for a living?", Category: "career"},
	{ID: 3, Text: "What are your main interests or hobbies?", Category: "interests"},
	{ID: 4, Text: "How would you describe your personality?", Category: "personal"},
	{ID: 5, Text: "What kind of tone do you prefer in communication?", Category: "preferences"},
}

// GetPredefinedQuestions returns the static interview starters.
// GET /v1/questions/predefined
func (h *Handler) GetPredefinedQuestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"questions": predefinedQuestions})
}
