package service

import (
	"context"
	"testing"

	"community/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createUserWithPassword(t *testing.T, env *testEnv, nickname, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Password: string(hash),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestUserService_UpdateProfileNicknameConflict(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.createUser(t, "taken")
	user := env.createUser(t, "original")

	_, err := env.userSvc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID, Nickname: "taken",
	})
	assert.Equal(t, "CONFLICT", appErrCode(err))

	updated, err := env.userSvc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID, Nickname: "renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Nickname)
}

func TestUserService_UpdateProfileKeepsPassword(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := createUserWithPassword(t, env, "keeper", "Original1!")

	_, err := env.userSvc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID, Nickname: "keeper2",
	})
	require.NoError(t, err)

	// The profile update must not touch the stored hash.
	fresh, err := env.userRepo.GetByIDWithPassword(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte("Original1!")))
}

func TestUserService_ChangePassword(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := createUserWithPassword(t, env, "changer", "Original1!")

	err := env.userSvc.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, CurrentPassword: "Wrong1!aa", NewPassword: "Replaced1!",
	})
	assert.Equal(t, "UNAUTHORIZED", appErrCode(err))

	err = env.userSvc.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, CurrentPassword: "Original1!", NewPassword: "weak",
	})
	assert.Equal(t, "VALIDATION_ERROR", appErrCode(err))

	require.NoError(t, env.userSvc.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, CurrentPassword: "Original1!", NewPassword: "Replaced1!",
	}))

	fresh, err := env.userRepo.GetByIDWithPassword(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte("Replaced1!")))
}

func TestUserService_DeleteAccountFreesIdentity(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "leaver")
	require.NoError(t, env.userSvc.DeleteAccount(ctx, user.ID))

	_, err := env.userSvc.GetUserByID(ctx, user.ID)
	assert.Equal(t, "NOT_FOUND", appErrCode(err))

	taken, err := env.userRepo.ExistsActiveByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.False(t, taken)
}
