package repository

import (
	"context"

	"plume/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for subscription data operations.
type FollowRepository interface {
	// Follow creates the (user, author) edge if it does not exist and
	// returns the record either way. It does not forbid self-follow;
	// that rule lives in the publishing service.
	Follow(ctx context.Context, userID, authorID uint) (*models.Follow, error)
	// Unfollow deletes the matching edge. Absence is not an error.
	Unfollow(ctx context.Context, userID, authorID uint) error
	IsFollowing(ctx context.Context, userID, authorID uint) (bool, error)
	ListFollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) (*models.Follow, error) {
	// INSERT ... ON CONFLICT DO NOTHING is atomic: two concurrent
	// followers of the same pair cannot both insert, and the loser
	// simply reads the surviving row below. No check-then-insert window.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (user_id, author_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, author_id) DO NOTHING`,
		userID, authorID,
	)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}

	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	var authorIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &authorIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return authorIDs, nil
}
