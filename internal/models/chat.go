package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is one companion conversation. The ID is a UUID string so the
// external shape matches the client contract (id, title, ordered messages,
// createdAt, updatedAt, lastMessage).
type ChatSession struct {
	ID          string         `gorm:"primaryKey;size:36" json:"_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Messages    []ChatMessage  `gorm:"foreignKey:SessionID" json:"messages"`
	LastMessage string         `gorm:"type:text" json:"lastMessage"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ChatMessage is a single turn entry, immutable once appended. Seq preserves
// insertion order within a session independent of timestamp resolution.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:36;not null;index" json:"-"`
	Seq       int       `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:10;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
