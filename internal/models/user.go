// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the community.
// Soft-deleted users keep their row for audit but are invisible to every
// normal query; their email and nickname become reusable by a new signup.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"not null;index" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Nickname  string         `gorm:"size:20;not null;index" json:"nickname"`
	ImageID   *uint          `gorm:"index" json:"profile_image_id,omitempty"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
