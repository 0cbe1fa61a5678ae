package server

import (
	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createChatRequest struct {
	Title string `json:"title"`
}

type sendChatRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId"`
}

// GetChats lists all companion conversations, most recently active first.
func (s *Server) GetChats(c *fiber.Ctx) error {
	sessions, err := s.chatService.ListSessions(c.UserContext())
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"chats":   sessions,
	})
}

// CreateChat starts a new conversation.
func (s *Server) CreateChat(c *fiber.Ctx) error {
	var req createChatRequest
	// An empty body is fine; the title defaults.
	_ = c.BodyParser(&req)

	session, err := s.chatService.CreateSession(c.UserContext(), req.Title)
	if err != nil {
		return chatError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"chatId":  session.ID,
		"chat":    session,
	})
}

// GetChatMessages returns the ordered transcript of one conversation.
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	messages, err := s.chatService.GetMessages(c.UserContext(), c.Params("id"))
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

// DeleteChat removes a conversation and returns the replacement session.
func (s *Server) DeleteChat(c *fiber.Ctx) error {
	replacement, err := s.chatService.DeleteSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"replacement": replacement,
	})
}

// SendChatMessage runs one companion exchange.
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	var req sendChatRequest
	if err := c.BodyParser(&req); err != nil {
		return chatError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.chatService.SendTurn(c.UserContext(), req.ChatID, req.Message)
	if err != nil {
		return chatError(c, err)
	}

	resp := fiber.Map{
		"success":  true,
		"response": result.Reply,
	}
	if result.Crisis {
		resp["crisis"] = true
		resp["crisisResources"] = result.CrisisResources
	}
	return c.JSON(resp)
}
