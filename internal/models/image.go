package models

import (
	"time"

	"gorm.io/gorm"
)

// Image holds metadata for an uploaded image. Byte storage lives elsewhere;
// this core only tracks ownership and the stored name/URL.
type Image struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	StoredName string         `gorm:"size:64;not null;uniqueIndex" json:"stored_name"`
	URL        string         `gorm:"not null" json:"url"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostImage attaches an image to a post at a given display position.
// The pair (post_id, image_id) is unique; ordering is by image_order.
type PostImage struct {
	PostID     uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	ImageID    uint      `gorm:"primaryKey;autoIncrement:false" json:"image_id"`
	Image      Image     `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	ImageOrder int       `gorm:"not null" json:"image_order"`
	CreatedAt  time.Time `json:"created_at"`
}
