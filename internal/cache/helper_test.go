package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedStat struct {
	PostID    uint  `json:"post_id"`
	LikeCount int64 `json:"like_count"`
}

func TestGetJSON_Miss(t *testing.T) {
	setupMiniredis(t)

	var out cachedStat
	found, err := GetJSON(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetJSONGetJSON_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	in := cachedStat{PostID: 7, LikeCount: 3}
	require.NoError(t, SetJSON(ctx, PostStatKey(7), in, PostStatTTL))

	var out cachedStat
	found, err := GetJSON(ctx, PostStatKey(7), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestCacheAside_FetchThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedStat) func() error {
		return func() error {
			fetches++
			*dest = cachedStat{PostID: 9, LikeCount: 5}
			return nil
		}
	}

	var first cachedStat
	require.NoError(t, CacheAside(ctx, PostStatKey(9), &first, time.Minute, load(&first)))
	assert.Equal(t, int64(5), first.LikeCount)
	assert.Equal(t, 1, fetches)

	// Second read comes from Redis without touching the loader.
	var second cachedStat
	require.NoError(t, CacheAside(ctx, PostStatKey(9), &second, time.Minute, load(&second)))
	assert.Equal(t, int64(5), second.LikeCount)
	assert.Equal(t, 1, fetches)
}

func TestInvalidatePostStats_DropsStatAndFeedKeys(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostStatKey(3), cachedStat{PostID: 3}, time.Minute))
	require.NoError(t, SetJSON(ctx, FeedFirstPageKey, []uint{3}, time.Minute))

	InvalidatePostStats(ctx, 3)

	assert.False(t, mr.Exists(PostStatKey(3)))
	assert.False(t, mr.Exists(FeedFirstPageKey))
}

func TestCacheAside_TTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostStatKey(4), cachedStat{PostID: 4, LikeCount: 1}, PostStatTTL))
	mr.FastForward(PostStatTTL + time.Second)

	var out cachedStat
	found, err := GetJSON(ctx, PostStatKey(4), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpers_NilClientDegrades(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// With no Redis every helper is a no-op and CacheAside always loads.
	var out cachedStat
	found, err := GetJSON(ctx, "any", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "any", out, time.Minute))

	fetched := false
	require.NoError(t, CacheAside(ctx, "any", &out, time.Minute, func() error {
		fetched = true
		out = cachedStat{PostID: 1}
		return nil
	}))
	assert.True(t, fetched)
	assert.Equal(t, uint(1), out.PostID)
}
