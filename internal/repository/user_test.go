package repository

import (
	"context"
	"testing"

	"community/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_EmailFreedBySoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "gone@example.com", Nickname: "gone", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))

	taken, err := repo.ExistsActiveByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, repo.Delete(ctx, user.ID))

	// The deleted account no longer holds the email or the nickname.
	taken, err = repo.ExistsActiveByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsActiveByNickname(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, taken)

	// A new signup can reclaim it.
	replacement := &models.User{Email: "gone@example.com", Nickname: "gone", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, replacement))
	assert.NotEqual(t, user.ID, replacement.ID)
}

func TestUserRepository_GetByEmailSkipsDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "login@example.com", Nickname: "login", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByEmail(ctx, "login@example.com")
	assert.Error(t, err)
}

func TestUserRepository_ExistsActiveByEmailQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	// The uniqueness probe must be scoped to live rows.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1 AND "users"\."deleted_at" IS NULL`).
		WithArgs("probe@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsActiveByEmail(context.Background(), "probe@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
