package repository

import (
	"context"
	"testing"

	"community/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostStatRepository_EnsureInitialized(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "statuser")
	post := createTestPost(t, db, user.ID, "stat post")

	require.NoError(t, repo.EnsureInitialized(ctx, post.ID))

	stat, err := repo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stat.LikeCount)
	assert.Equal(t, int64(0), stat.CommentCount)
	assert.Equal(t, int64(0), stat.ViewCount)

	// Re-initializing is a no-op, not an error, and does not reset counters.
	require.NoError(t, repo.Increment(ctx, post.ID, models.StatLike))
	require.NoError(t, repo.EnsureInitialized(ctx, post.ID))

	stat, err = repo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stat.LikeCount)
}

func TestPostStatRepository_GetWithoutRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	// No row exists: reads come back zero-valued.
	stat, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), stat.PostID)
	assert.Equal(t, int64(0), stat.LikeCount)

	// And the read must not have created the row.
	var count int64
	require.NoError(t, db.Model(&models.PostStat{}).Where("post_id = ?", 42).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPostStatRepository_IncrementDecrement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "counter")
	post := createTestPost(t, db, user.ID, "counter post")

	require.NoError(t, repo.EnsureInitialized(ctx, post.ID))
	require.NoError(t, repo.Increment(ctx, post.ID, models.StatComment))
	require.NoError(t, repo.Increment(ctx, post.ID, models.StatComment))
	require.NoError(t, repo.Increment(ctx, post.ID, models.StatView))

	stat, err := repo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stat.CommentCount)
	assert.Equal(t, int64(1), stat.ViewCount)
	assert.Equal(t, int64(0), stat.LikeCount)

	applied, err := repo.Decrement(ctx, post.ID, models.StatComment)
	require.NoError(t, err)
	assert.True(t, applied)

	stat, err = repo.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stat.CommentCount)
}

func TestPostStatRepository_DecrementMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	// Decrementing a post with no stat row is skipped, not an error.
	applied, err := repo.Decrement(ctx, 999, models.StatLike)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestPostStatRepository_UnknownField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	err := repo.Increment(ctx, 1, models.StatField("share_count"))
	assert.Error(t, err)

	_, err = repo.Decrement(ctx, 1, models.StatField("id = 1; drop table post_stats"))
	assert.Error(t, err)
}

func TestPostStatRepository_GetMany(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "many")
	p1 := createTestPost(t, db, user.ID, "p1")
	p2 := createTestPost(t, db, user.ID, "p2")

	require.NoError(t, repo.EnsureInitialized(ctx, p1.ID))
	require.NoError(t, repo.Increment(ctx, p1.ID, models.StatLike))

	stats, err := repo.GetMany(ctx, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(1), stats[p1.ID].LikeCount)
	// p2 has no row but still gets a zero entry.
	assert.Equal(t, int64(0), stats[p2.ID].LikeCount)
}

func TestPostStatRepository_DeleteByPostID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostStatRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "deleter")
	post := createTestPost(t, db, user.ID, "doomed")

	require.NoError(t, repo.EnsureInitialized(ctx, post.ID))
	require.NoError(t, repo.DeleteByPostID(ctx, post.ID))

	var count int64
	require.NoError(t, db.Model(&models.PostStat{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
