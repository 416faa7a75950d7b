package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"plume/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with demo users, groups, posts, comments
// and follows.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d groups, %d posts...",
		opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create groups: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("%d groups created", len(groups))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post, err := f.CreatePost(author, func(p *models.Post) {
			// Roughly two thirds of posts land in a group.
			if len(groups) > 0 && r.Intn(3) != 0 {
				p.GroupID = &groups[r.Intn(len(groups))].ID
			}
		})
		if err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("%d posts created", len(posts))

	for i := 0; i < opts.NumComments; i++ {
		post := posts[r.Intn(len(posts))]
		author := users[r.Intn(len(users))]
		if _, err := f.CreateComment(post, author); err != nil {
			return fmt.Errorf("failed to create comments: %w", err)
		}
	}
	log.Printf("%d comments created", opts.NumComments)

	// A few subscriptions per user; self-follows are skipped by the factory.
	followCount := 0
	for _, user := range users {
		for i := 0; i < 3 && len(users) > 1; i++ {
			author := users[r.Intn(len(users))]
			if err := f.CreateFollow(user, author); err != nil {
				return fmt.Errorf("failed to create follows: %w", err)
			}
			followCount++
		}
	}
	log.Printf("%d follow edges attempted", followCount)

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
