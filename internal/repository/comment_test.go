package repository

import (
	"context"
	"testing"

	"community/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, user.ID, "commented post")

	parent := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "first", Depth: models.CommentDepthTop}
	require.NoError(t, repo.Create(ctx, parent))

	reply := &models.Comment{PostID: post.ID, UserID: user.ID, ParentID: &parent.ID, Content: "reply", Depth: models.CommentDepthReply}
	require.NoError(t, repo.Create(ctx, reply))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, models.CommentDepthReply, comments[1].Depth)
}

func TestCommentRepository_DeleteWithReplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "cascade")
	post := createTestPost(t, db, user.ID, "cascade post")

	parent := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "parent", Depth: models.CommentDepthTop}
	require.NoError(t, repo.Create(ctx, parent))
	for i := 0; i < 2; i++ {
		reply := &models.Comment{PostID: post.ID, UserID: user.ID, ParentID: &parent.ID, Content: "r", Depth: models.CommentDepthReply}
		require.NoError(t, repo.Create(ctx, reply))
	}
	other := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "unrelated", Depth: models.CommentDepthTop}
	require.NoError(t, repo.Create(ctx, other))

	// One statement removes the parent and both replies.
	removed, err := repo.DeleteWithReplies(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	remaining, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestCommentRepository_DeleteReplyOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "replydel")
	post := createTestPost(t, db, user.ID, "reply post")

	parent := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "parent", Depth: models.CommentDepthTop}
	require.NoError(t, repo.Create(ctx, parent))
	reply := &models.Comment{PostID: post.ID, UserID: user.ID, ParentID: &parent.ID, Content: "reply", Depth: models.CommentDepthReply}
	require.NoError(t, repo.Create(ctx, reply))

	// Deleting a reply touches only that row; nothing references its id as parent.
	removed, err := repo.DeleteWithReplies(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestCommentRepository_CountReplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "replycount")
	post := createTestPost(t, db, user.ID, "counted post")

	parent := &models.Comment{PostID: post.ID, UserID: user.ID, Content: "parent", Depth: models.CommentDepthTop}
	require.NoError(t, repo.Create(ctx, parent))
	for i := 0; i < 3; i++ {
		reply := &models.Comment{PostID: post.ID, UserID: user.ID, ParentID: &parent.ID, Content: "r", Depth: models.CommentDepthReply}
		require.NoError(t, repo.Create(ctx, reply))
	}

	count, err := repo.CountReplies(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
