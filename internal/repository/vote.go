package repository

import (
	"context"

	"mindhaven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	Upsert(ctx context.Context, vote *models.Vote) error
	TalliesFor(ctx context.Context, targetType string, targetIDs []uint) (map[uint]models.VoteTally, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Upsert inserts the vote or, when the user already voted on this target,
// replaces the stored value. One live vote per (user, target).
func (r *voteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "target_type"},
			{Name: "target_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(vote).Error
}

// TalliesFor loads every vote row for the given targets in one query and
// folds them into tallies. Only exact +1/-1 values are counted.
func (r *voteRepository) TalliesFor(ctx context.Context, targetType string, targetIDs []uint) (map[uint]models.VoteTally, error) {
	tallies := make(map[uint]models.VoteTally, len(targetIDs))
	if len(targetIDs) == 0 {
		return tallies, nil
	}

	var votes []models.Vote
	if err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Find(&votes).Error; err != nil {
		return nil, err
	}

	for _, v := range votes {
		tally := tallies[v.TargetID]
		switch v.Value {
		case 1:
			tally.Upvotes++
		case -1:
			tally.Downvotes++
		}
		tallies[v.TargetID] = tally
	}
	return tallies, nil
}
