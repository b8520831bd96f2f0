// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"community/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data: users, posts with spread-out
// creation times, comments with replies, likes, and counter rows that match
// what the write paths would have produced.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{"post_stats", "post_likes", "comments", "post_images", "images", "posts", "users"}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		nickname := gofakeit.Username()
		if len(nickname) > 20 {
			nickname = nickname[:20]
		}
		user := &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Nickname: fmt.Sprintf("%s%d", nickname[:min(len(nickname), 16)], i),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		title := gofakeit.Sentence(4)
		if len(title) > models.MaxPostTitleLen {
			title = title[:models.MaxPostTitleLen]
		}
		post := &models.Post{
			UserID:  users[rand.Intn(len(users))].ID,
			Title:   title,
			Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		}
		// Spread creation times over the past 90 days.
		daysBack := rand.Intn(90)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(rand.Intn(24))*time.Hour)
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement adds likes and comments, keeping the denormalized
// counters consistent with the rows it inserts.
func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		var likeCount, commentCount int64

		for _, user := range users {
			if rand.Float64() > 0.3 {
				continue
			}
			like := &models.PostLike{UserID: user.ID, PostID: post.ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
			likeCount++
		}

		numComments := rand.Intn(4)
		var parentIDs []uint
		for i := 0; i < numComments; i++ {
			comment := &models.Comment{
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
				Content: gofakeit.Sentence(8),
				Depth:   models.CommentDepthTop,
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
			commentCount++
			parentIDs = append(parentIDs, comment.ID)

			if rand.Float64() < 0.5 {
				parentID := parentIDs[len(parentIDs)-1]
				reply := &models.Comment{
					PostID:   post.ID,
					UserID:   users[rand.Intn(len(users))].ID,
					ParentID: &parentID,
					Content:  gofakeit.Sentence(6),
					Depth:    models.CommentDepthReply,
				}
				if err := db.Create(reply).Error; err != nil {
					return err
				}
				commentCount++
			}
		}

		if likeCount > 0 || commentCount > 0 {
			stat := &models.PostStat{
				PostID:       post.ID,
				LikeCount:    likeCount,
				CommentCount: commentCount,
				ViewCount:    int64(rand.Intn(500)),
			}
			if err := db.Create(stat).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
