package server

import (
	"strings"

	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBlogs scrapes the blog listing and returns the cards.
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	cards, err := s.scraper.FetchListing(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"blogs": cards,
		"count": len(cards),
	})
}

// GetBlogArticle scrapes a single article. The slug comes from the wildcard
// so nested paths survive intact.
func (s *Server) GetBlogArticle(c *fiber.Ctx) error {
	slug := strings.Trim(c.Params("*"), "/")
	if slug == "" {
		return respondError(c, models.NewValidationError("Blog slug is required"))
	}

	article, err := s.scraper.FetchArticle(c.UserContext(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"article": article})
}
