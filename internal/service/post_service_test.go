package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"community/internal/cache"
	"community/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "author")

	_, err := env.postSvc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, Title: " ", Content: "body",
	})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(err))

	_, err = env.postSvc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, Title: strings.Repeat("t", models.MaxPostTitleLen+1), Content: "body",
	})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(err))

	_, err = env.postSvc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, Title: "ok", Content: "",
	})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(err))

	post, err := env.postSvc.CreatePost(ctx, CreatePostInput{
		UserID: user.ID, Title: "ok", Content: "body",
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestPostService_GetPostCountsViews(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "viewer")
	post := env.createPost(t, user.ID, "watched")

	detail, err := env.postSvc.GetPost(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Stats.ViewCount)
	assert.False(t, detail.Liked)

	detail, err = env.postSvc.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.Stats.ViewCount)

	_, err = env.postSvc.GetPost(ctx, 9999, user.ID)
	assert.Equal(t, "NOT_FOUND", appErrCode(err))
}

func TestPostService_FeedPagination(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "paginator")
	base := time.Now().Add(-time.Hour)
	var ids []uint
	for i := 0; i < 5; i++ {
		post := &models.Post{
			UserID:    user.ID,
			Title:     "feed",
			Content:   "content",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, env.db.Create(post).Error)
		ids = append(ids, post.ID)
	}

	first, err := env.postSvc.GetFeed(ctx, 0, 2, 0)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, ids[4], first.Items[0].ID)
	assert.Equal(t, ids[3], first.Items[1].ID)
	assert.Equal(t, ids[3], first.LastPostID)
	assert.True(t, first.HasMore)

	second, err := env.postSvc.GetFeed(ctx, first.LastPostID, 2, 0)
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, ids[2], second.Items[0].ID)
	assert.Equal(t, ids[1], second.Items[1].ID)

	third, err := env.postSvc.GetFeed(ctx, second.LastPostID, 2, 0)
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Equal(t, ids[0], third.Items[0].ID)
	assert.False(t, third.HasMore)
}

func TestPostService_FeedRejectsNonPositiveLimit(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	for _, limit := range []int{0, -1} {
		_, err := env.postSvc.GetFeed(ctx, 0, limit, 0)
		assert.Equal(t, "VALIDATION_ERROR", appErrCode(err))
	}
}

func TestPostService_FeedFirstPageCached(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	env := setupEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	env.createPost(t, author.ID, "first")

	page, err := env.postSvc.GetFeed(ctx, 0, DefaultFeedPageSize, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	// A row inserted behind the cache's back stays invisible until the key
	// is dropped.
	env.createPost(t, author.ID, "second")

	cached, err := env.postSvc.GetFeed(ctx, 0, DefaultFeedPageSize, 0)
	require.NoError(t, err)
	assert.Len(t, cached.Items, 1)

	cache.Invalidate(ctx, cache.FeedFirstPageKey)

	fresh, err := env.postSvc.GetFeed(ctx, 0, DefaultFeedPageSize, 0)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 2)
}

func TestPostService_FeedCarriesStatsAndLikes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "feedfan")
	liked := env.createPost(t, user.ID, "liked one")
	plain := env.createPost(t, user.ID, "plain one")

	require.NoError(t, env.likeSvc.Like(ctx, LikeInput{UserID: user.ID, PostID: liked.ID}))

	page, err := env.postSvc.GetFeed(ctx, 0, 10, user.ID)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	byID := map[uint]*PostDetail{}
	for _, item := range page.Items {
		byID[item.ID] = item
	}
	assert.True(t, byID[liked.ID].Liked)
	assert.Equal(t, int64(1), byID[liked.ID].Stats.LikeCount)
	// The untouched post has no stat row yet but still renders zeros.
	assert.False(t, byID[plain.ID].Liked)
	assert.Equal(t, int64(0), byID[plain.ID].Stats.LikeCount)
}

func TestPostService_UpdateOwnership(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "editor")
	other := env.createUser(t, "intruder")
	post := env.createPost(t, owner.ID, "original")

	_, err := env.postSvc.UpdatePost(ctx, UpdatePostInput{
		UserID: other.ID, PostID: post.ID, Title: "hijacked", Content: "body",
	})
	assert.Equal(t, "UNAUTHORIZED", appErrCode(err))

	updated, err := env.postSvc.UpdatePost(ctx, UpdatePostInput{
		UserID: owner.ID, PostID: post.ID, Title: "revised", Content: "new body",
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Title)
}

func TestPostService_DeleteHidesEverything(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "remover")
	post := env.createPost(t, user.ID, "short lived")

	require.NoError(t, env.likeSvc.Like(ctx, LikeInput{UserID: user.ID, PostID: post.ID}))
	require.NoError(t, env.postSvc.DeletePost(ctx, DeletePostInput{UserID: user.ID, PostID: post.ID}))

	_, err := env.postSvc.GetPost(ctx, post.ID, user.ID)
	assert.Equal(t, "NOT_FOUND", appErrCode(err))

	page, err := env.postSvc.GetFeed(ctx, 0, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	// The like row and the counters survive underneath the hidden post.
	var likes int64
	require.NoError(t, env.db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)
}

func TestPostService_PurgeRemovesDependents(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "admin")
	post := env.createPost(t, user.ID, "condemned")
	keeper := env.createPost(t, user.ID, "survivor")

	require.NoError(t, env.likeSvc.Like(ctx, LikeInput{UserID: user.ID, PostID: post.ID}))
	_, err := env.commentSvc.CreateComment(ctx, CreateCommentInput{
		UserID: user.ID, PostID: post.ID, Content: "doomed comment",
	})
	require.NoError(t, err)
	require.NoError(t, env.likeSvc.Like(ctx, LikeInput{UserID: user.ID, PostID: keeper.ID}))

	require.NoError(t, env.postSvc.PurgePost(ctx, post.ID))

	for table, model := range map[string]interface{}{
		"posts":      &models.Post{},
		"post_likes": &models.PostLike{},
		"comments":   &models.Comment{},
		"post_stats": &models.PostStat{},
	} {
		var count int64
		q := env.db.Unscoped().Model(model)
		if table == "posts" {
			q = q.Where("id = ?", post.ID)
		} else {
			q = q.Where("post_id = ?", post.ID)
		}
		require.NoError(t, q.Count(&count).Error)
		assert.Zero(t, count, "leftover rows in %s", table)
	}

	// The other post is untouched.
	exists, err := env.postRepo.ExistsActive(ctx, keeper.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	stat, err := env.statRepo.Get(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stat.LikeCount)
}
