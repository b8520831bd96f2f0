package models

import "time"

// Comment depth is capped at one level of replies. A reply to a reply is
// still stored with depth 1; the parent chain is never walked recursively.
const (
	CommentDepthTop   = 0
	CommentDepthReply = 1

	// MaxCommentLen bounds the comment body length.
	MaxCommentLen = 500
)

// Comment represents a comment on a post, optionally a reply to a top-level
// comment. Comments have no soft delete: deleting a top-level comment
// hard-removes it together with its replies.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	Depth     int       `gorm:"not null" json:"depth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Replies is populated by the thread assembly, not by GORM.
	Replies []*Comment `gorm:"-" json:"replies"`
}

// DepthFor derives the stored depth from the parent reference.
func DepthFor(parentID *uint) int {
	if parentID != nil {
		return CommentDepthReply
	}
	return CommentDepthTop
}
