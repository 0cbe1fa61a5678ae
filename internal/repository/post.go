package repository

import (
	"context"

	"mindhaven/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByCommunity(ctx context.Context, communityID uint) ([]models.Post, error)
	CommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByCommunity returns posts newest first with authors preloaded. Vote
// tallies and comment counts are attached by the service layer in batched
// queries, never per post.
func (r *postRepository) ListByCommunity(ctx context.Context, communityID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

type commentCountRow struct {
	PostID uint
	Count  int64
}

// CommentCounts returns per-post comment counts for a batch of posts in a
// single grouped query.
func (r *postRepository) CommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []commentCountRow
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
