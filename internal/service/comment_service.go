package service

import (
	"context"
	"errors"
	"strings"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"

	"gorm.io/gorm"
)

// CreateCommentInput is the input for creating a comment.
type CreateCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
}

// CommentService provides comment business logic with moderation on writes.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	voteRepo    repository.VoteRepository
	gate        ToxicityGate
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	voteRepo repository.VoteRepository,
	gate ToxicityGate,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		voteRepo:    voteRepo,
		gate:        gate,
	}
}

// CreateComment validates and moderates the reply, then persists it.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", in.PostID)
		}
		return nil, models.NewInternalError(err)
	}

	if !s.gate.Allow(ctx, "comment", in.Content) {
		return nil, models.NewValidationError("Your comment has been flagged for toxic behavior")
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListByPost returns a post's comments with vote tallies attached in one
// batched query.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(comments) == 0 {
		return comments, nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	tallies, err := s.voteRepo.TalliesFor(ctx, models.VoteTargetComment, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range comments {
		comments[i].Votes = tallies[comments[i].ID]
	}
	return comments, nil
}
