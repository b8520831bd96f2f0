package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	PostStatKeyPrefix = "post:%d:stats"
	FeedFirstPageKey  = "feed:first"
)

const (
	UserTTL     = 5 * time.Minute
	PostTTL     = 30 * time.Minute
	PostStatTTL = 30 * time.Second
	FeedTTL     = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostStatKey(postID uint) string {
	return fmt.Sprintf(PostStatKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops the post body and its counters together; the feed's
// first page also goes since it embeds both.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostStatKey(postID))
	Invalidate(ctx, FeedFirstPageKey)
}

func InvalidatePostStats(ctx context.Context, postID uint) {
	Invalidate(ctx, PostStatKey(postID))
	Invalidate(ctx, FeedFirstPageKey)
}
