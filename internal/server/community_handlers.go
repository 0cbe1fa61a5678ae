package server

import (
	"mindhaven/internal/models"
	"mindhaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type castVoteRequest struct {
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	Value      int    `json:"value"`
}

// GetCommunities lists all communities.
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	communities, err := s.communityService.ListCommunities(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"communities": communities})
}

// GetCommunity returns one community.
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	community, err := s.communityService.GetCommunity(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(community)
}

// JoinCommunity increments the community's member count for the caller.
func (s *Server) JoinCommunity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	community, err := s.communityService.JoinCommunity(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(community)
}

// GetCommunityPosts lists a community's posts with tallies and comment counts.
func (s *Server) GetCommunityPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := s.communityService.GetCommunity(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	posts, err := s.postService.ListByCommunity(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// CreateCommunityPost creates a moderated post in a community.
func (s *Server) CreateCommunityPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := s.communityService.GetCommunity(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		CommunityID: id,
		UserID:      currentUserID(c),
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost returns one post with tallies and comment count.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPostComments lists a post's comments with vote tallies.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentService.ListByPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreatePostComment creates a moderated comment on a post.
func (s *Server) CreatePostComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:  id,
		UserID:  currentUserID(c),
		Content: req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// CastVote records the authenticated user's vote on a post or comment.
func (s *Server) CastVote(c *fiber.Ctx) error {
	var req castVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	tally, err := s.voteService.CastVote(c.UserContext(), service.CastVoteInput{
		UserID:     currentUserID(c),
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Value:      req.Value,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"votes": tally})
}
