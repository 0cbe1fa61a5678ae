package server

import (
	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

type toxicCheckRequest struct {
	Text string `json:"text"`
}

// ToxicCheck exposes the raw toxicity classification. The endpoint fails
// open: classifier trouble reports non-toxic with an advisory message.
func (s *Server) ToxicCheck(c *fiber.Ctx) error {
	var req toxicCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Text == "" {
		return respondError(c, models.NewValidationError("Text is required"))
	}

	result, err := s.moderation.CheckToxicity(c.UserContext(), req.Text)
	if err != nil {
		return c.JSON(fiber.Map{
			"isToxic":    false,
			"confidence": 0,
			"message":    "Moderation service unavailable; content allowed by default",
		})
	}

	return c.JSON(fiber.Map{
		"isToxic":    result.IsToxic,
		"confidence": result.Confidence,
	})
}
