package models

import "time"

// Vote target types.
const (
	VoteTargetPost    = "post"
	VoteTargetComment = "comment"
)

// Vote records a single user's live vote on a post or comment.
// The combination of UserID, TargetType and TargetID must be unique;
// re-voting replaces the prior value (upsert on the composite key).
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetType string    `gorm:"size:10;not null;uniqueIndex:idx_user_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	Value      int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
