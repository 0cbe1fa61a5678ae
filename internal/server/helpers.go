package server

import (
	"errors"
	"strconv"

	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts and validates a numeric ID from the route parameters.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user ID placed by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// statusForError maps the application error taxonomy to HTTP status codes.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "UPSTREAM_FETCH":
		return fiber.StatusBadGateway
	case "PARSE_ERROR":
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError sends the standard error envelope with the mapped status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// chatError sends the companion-chat envelope: {success:false, error}.
func chatError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
