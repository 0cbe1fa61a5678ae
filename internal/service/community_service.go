package service

import (
	"context"
	"errors"

	"mindhaven/internal/models"
	"mindhaven/internal/repository"

	"gorm.io/gorm"
)

// CommunityService provides community reads.
type CommunityService struct {
	communityRepo repository.CommunityRepository
}

// NewCommunityService returns a new CommunityService.
func NewCommunityService(communityRepo repository.CommunityRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo}
}

// ListCommunities returns all communities.
func (s *CommunityService) ListCommunities(ctx context.Context) ([]models.Community, error) {
	communities, err := s.communityRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return communities, nil
}

// JoinCommunity bumps the community's member count. Membership itself is not
// tracked per user; the count drives the community directory display.
func (s *CommunityService) JoinCommunity(ctx context.Context, id uint) (*models.Community, error) {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return nil, err
	}
	if err := s.communityRepo.IncrementMemberCount(ctx, id, 1); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetCommunity(ctx, id)
}

// GetCommunity returns one community by ID.
func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("community", id)
		}
		return nil, models.NewInternalError(err)
	}
	return community, nil
}
