package service

import (
	"context"
	"errors"
	"strings"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"

	"gorm.io/gorm"
)

// ToxicityGate screens text before it is persisted. Implementations must
// fail open: an unreachable classifier allows content through.
type ToxicityGate interface {
	Allow(ctx context.Context, kind, text string) bool
}

// CreatePostInput is the input for creating a post.
type CreatePostInput struct {
	CommunityID uint
	UserID      uint
	Title       string
	Content     string
}

// PostService provides post business logic with moderation on writes.
type PostService struct {
	postRepo repository.PostRepository
	voteRepo repository.VoteRepository
	gate     ToxicityGate
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, voteRepo repository.VoteRepository, gate ToxicityGate) *PostService {
	return &PostService{
		postRepo: postRepo,
		voteRepo: voteRepo,
		gate:     gate,
	}
}

// CreatePost validates and moderates the submission, then persists it.
// Title and content are checked independently; a rejected submission writes
// nothing.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if in.CommunityID == 0 {
		return nil, models.NewValidationError("Community ID is required")
	}

	if !s.gate.Allow(ctx, "post", in.Title) || !s.gate.Allow(ctx, "post", in.Content) {
		return nil, models.NewValidationError("Your post has been flagged for toxic behavior")
	}

	post := &models.Post{
		CommunityID: in.CommunityID,
		UserID:      in.UserID,
		Title:       in.Title,
		Content:     in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// GetPost returns a single post with vote tally and comment count attached.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, models.NewInternalError(err)
	}

	if err := s.enrich(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByCommunity returns a community's posts enriched with vote tallies and
// comment counts. Enrichment is batched: one vote query and one grouped
// comment-count query regardless of page size.
func (s *PostService) ListByCommunity(ctx context.Context, communityID uint) ([]models.Post, error) {
	posts, err := s.postRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	refs := make([]*models.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := s.enrich(ctx, refs); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) enrich(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	tallies, err := s.voteRepo.TalliesFor(ctx, models.VoteTargetPost, ids)
	if err != nil {
		return models.NewInternalError(err)
	}
	counts, err := s.postRepo.CommentCounts(ctx, ids)
	if err != nil {
		return models.NewInternalError(err)
	}

	for _, p := range posts {
		p.Votes = tallies[p.ID]
		p.CommentCount = counts[p.ID]
	}
	return nil
}
