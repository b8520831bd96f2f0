package models

import (
	"time"

	"gorm.io/gorm"
)

// PostLike records a user's like on a post. The (user_id, post_id) pair is
// unique for the lifetime of the row: unliking sets deleted_at instead of
// removing the row, and re-liking clears it again, so the composite identity
// survives any number of toggle cycles. The unique index is also the
// serialization point for concurrent first-likes.
type PostLike struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_user_post_like" json:"user_id"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_user_post_like" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Active reports whether the like is currently on (not soft-deleted).
func (l *PostLike) Active() bool {
	return !l.DeletedAt.Valid
}
