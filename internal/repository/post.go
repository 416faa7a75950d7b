package repository

import (
	"context"
	"errors"
	"time"

	"plume/internal/cache"
	"plume/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Every
// list method returns the window plus the total match count so the feed
// composer can build pagination metadata, newest-first (pub_date DESC,
// ties broken by id DESC).
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, int64, error)
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// pub_date is stamped exactly once, at creation.
	if post.PubDate.IsZero() {
		post.PubDate = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Group").
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Update persists the mutable fields only. Author and pub_date are
// immutable after creation and are deliberately excluded here.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"text":      post.Text,
			"group_id":  post.GroupID,
			"image_url": post.ImageURL,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), limit, offset)
}

func (r *postRepository) ListByGroupID(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) ListByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, int64, error) {
	// An empty follow set is an empty feed, not a query.
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id IN ?", authorIDs)
	return r.list(ctx, q, limit, offset)
}

func (r *postRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// list applies the shared ordering and pagination window to a prepared
// query and also counts the total matches.
func (r *postRepository) list(ctx context.Context, q *gorm.DB, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}
