package service

import (
	"errors"
	"testing"

	"community/internal/models"
	"community/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the services against an in-memory sqlite database with real
// repositories, the same shape the server assembles in production.
type testEnv struct {
	db          *gorm.DB
	statSvc     *StatService
	likeSvc     *LikeService
	commentSvc  *CommentService
	postSvc     *PostService
	userSvc     *UserService
	postRepo    repository.PostRepository
	statRepo    repository.PostStatRepository
	likeRepo    repository.PostLikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostStat{},
		&models.PostLike{},
		&models.Comment{},
		&models.Image{},
		&models.PostImage{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	statRepo := repository.NewPostStatRepository(db)
	likeRepo := repository.NewPostLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	imageRepo := repository.NewImageRepository(db)
	userRepo := repository.NewUserRepository(db)

	statSvc := NewStatService(statRepo, postRepo)

	return &testEnv{
		db:          db,
		statSvc:     statSvc,
		likeSvc:     NewLikeService(db, likeRepo, postRepo, userRepo, statSvc),
		commentSvc:  NewCommentService(db, commentRepo, postRepo, userRepo, statSvc),
		postSvc:     NewPostService(db, postRepo, statRepo, likeRepo, commentRepo, imageRepo, statSvc),
		userSvc:     NewUserService(userRepo),
		postRepo:    postRepo,
		statRepo:    statRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, nickname string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Password: "hashed",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createPost(t *testing.T, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:  userID,
		Title:   title,
		Content: "content for " + title,
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

// appErrCode extracts the code from an AppError, or empty string.
func appErrCode(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
