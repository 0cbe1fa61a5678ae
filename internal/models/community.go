package models

import (
	"time"

	"gorm.io/gorm"
)

// Community represents a themed discussion space.
type Community struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	MemberCount int            `gorm:"default:0" json:"member_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Community) TableName() string {
	return "communities"
}
