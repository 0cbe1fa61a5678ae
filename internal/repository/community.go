package repository

import (
	"context"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	List(ctx context.Context) ([]models.Community, error)
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	Create(ctx context.Context, community *models.Community) error
	IncrementMemberCount(ctx context.Context, id uint, delta int) error
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new community repository
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) List(ctx context.Context) ([]models.Community, error) {
	var communities []models.Community
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.WithContext(ctx).First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *communityRepository) IncrementMemberCount(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Community{}).
		Where("id = ?", id).
		UpdateColumn("member_count", gorm.Expr("member_count + ?", delta)).Error
}
