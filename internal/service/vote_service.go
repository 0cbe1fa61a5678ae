package service

import (
	"context"
	"errors"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"

	"gorm.io/gorm"
)

// CastVoteInput is the input for casting or changing a vote.
type CastVoteInput struct {
	UserID     uint
	TargetType string
	TargetID   uint
	Value      int
}

// VoteService provides vote business logic.
type VoteService struct {
	voteRepo    repository.VoteRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewVoteService returns a new VoteService.
func NewVoteService(
	voteRepo repository.VoteRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *VoteService {
	return &VoteService{
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CastVote records the user's live vote on a target. Re-voting replaces the
// prior value; the operation is idempotent for the same value.
func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (*models.VoteTally, error) {
	if in.Value != 1 && in.Value != -1 {
		return nil, models.NewValidationError("Vote value must be +1 or -1")
	}

	switch in.TargetType {
	case models.VoteTargetPost:
		if _, err := s.postRepo.GetByID(ctx, in.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("post", in.TargetID)
			}
			return nil, models.NewInternalError(err)
		}
	case models.VoteTargetComment:
		if _, err := s.commentRepo.GetByID(ctx, in.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("comment", in.TargetID)
			}
			return nil, models.NewInternalError(err)
		}
	default:
		return nil, models.NewValidationError("Target type must be 'post' or 'comment'")
	}

	vote := &models.Vote{
		UserID:     in.UserID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Value:      in.Value,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, models.NewInternalError(err)
	}

	tallies, err := s.voteRepo.TalliesFor(ctx, in.TargetType, []uint{in.TargetID})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	tally := tallies[in.TargetID]
	return &tally, nil
}
