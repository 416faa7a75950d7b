// Package service implements the publishing service: validation and
// authorization for every mutation. Authorship is always derived from the
// authenticated actor, never from caller-supplied payload.
package service

import (
	"context"

	"plume/internal/models"
	"plume/internal/observability"
	"plume/internal/repository"
	"plume/internal/validation"
)

const (
	maxPostLen    = 50000
	maxCommentLen = 10000
)

// PublishService validates and applies create/edit operations on posts and
// comments and manages follow subscriptions.
type PublishService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	groups   repository.GroupRepository
	users    repository.UserRepository
	follows  repository.FollowRepository
}

// NewPublishService creates a new publishing service.
func NewPublishService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
) *PublishService {
	return &PublishService{
		posts:    posts,
		comments: comments,
		groups:   groups,
		users:    users,
		follows:  follows,
	}
}

// CreatePostInput carries a new post's payload. ActorID is the
// authenticated user and becomes the author.
type CreatePostInput struct {
	ActorID  uint
	Text     string
	GroupID  *uint
	ImageURL string
}

// EditPostInput carries a post edit. The three mutable fields are
// full-replace: a nil GroupID clears the group.
type EditPostInput struct {
	ActorID  uint
	PostID   uint
	Text     string
	GroupID  *uint
	ImageURL string
}

// CreateCommentInput carries a new comment's payload.
type CreateCommentInput struct {
	ActorID uint
	PostID  uint
	Text    string
}

func (s *PublishService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.RequireText("text", in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Post text too long (max 50000 characters)")
	}
	if in.GroupID != nil {
		if err := s.groupExists(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.ActorID,
		GroupID:  in.GroupID,
		ImageURL: in.ImageURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return s.posts.GetByID(ctx, post.ID)
}

func (s *PublishService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	// Only the author may edit, without exception.
	if post.AuthorID != in.ActorID {
		return nil, models.NewPermissionDeniedError("Only the author can edit this post")
	}

	if err := validation.RequireText("text", in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Text) > maxPostLen {
		return nil, models.NewValidationError("Post text too long (max 50000 characters)")
	}
	if in.GroupID != nil {
		if err := s.groupExists(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	post.ImageURL = in.ImageURL
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.posts.GetByID(ctx, post.ID)
}

func (s *PublishService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if err := validation.RequireText("text", in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.ActorID,
		Text:     in.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreated.Inc()
	return s.comments.GetByID(ctx, comment.ID)
}

// Follow subscribes the actor to the named author. Self-follow is
// rejected here, before the subscription store is ever reached.
func (s *PublishService) Follow(ctx context.Context, actorID uint, authorUsername string) (*models.Follow, error) {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}

	if author.ID == actorID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	follow, err := s.follows.Follow(ctx, actorID, author.ID)
	if err != nil {
		return nil, err
	}

	observability.FollowActions.WithLabelValues("follow").Inc()
	return follow, nil
}

// Unfollow removes the actor's subscription to the named author. An
// unknown author or an absent subscription are both no-ops.
func (s *PublishService) Unfollow(ctx context.Context, actorID uint, authorUsername string) error {
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.follows.Unfollow(ctx, actorID, author.ID); err != nil {
		return err
	}

	observability.FollowActions.WithLabelValues("unfollow").Inc()
	return nil
}

func (s *PublishService) groupExists(ctx context.Context, groupID uint) error {
	_, err := s.groups.GetByID(ctx, groupID)
	return err
}
