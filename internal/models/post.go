package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the community feed.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title     string         `gorm:"size:50;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	// MaxPostTitleLen bounds the post title length.
	MaxPostTitleLen = 50
	// MaxPostContentLen bounds the post body length.
	MaxPostContentLen = 10000
)
