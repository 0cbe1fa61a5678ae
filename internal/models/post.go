package models

import (
	"time"

	"gorm.io/gorm"
)

// VoteTally holds the aggregate vote counts computed at read time.
type VoteTally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Post represents a user submission inside a community.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CommunityID uint       `gorm:"not null;index" json:"community_id"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	// Votes and CommentCount are not persisted; computed at query time
	Votes        VoteTally      `gorm:"-" json:"votes"`
	CommentCount int64          `gorm:"-" json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
