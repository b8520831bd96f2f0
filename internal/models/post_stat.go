package models

import "time"

// PostStat holds the denormalized per-post counters. The row shares its
// identity with the post (post_id is the primary key) and is created lazily
// on the first write; it is never the source of truth for toggle state, only
// for display counts.
type PostStat struct {
	PostID       uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	LikeCount    int64     `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64     `gorm:"not null;default:0" json:"comment_count"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StatField identifies one of the PostStat counters.
type StatField string

const (
	StatLike    StatField = "like_count"
	StatComment StatField = "comment_count"
	StatView    StatField = "view_count"
)

// Column returns the database column for the counter. Only the three known
// fields are valid; anything else maps to an empty string so a bad caller
// fails loudly at the database instead of updating an arbitrary column.
func (f StatField) Column() string {
	switch f {
	case StatLike, StatComment, StatView:
		return string(f)
	}
	return ""
}
