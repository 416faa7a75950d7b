package service

import (
	"context"
	"errors"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"
)

const (
	maxGroupTitleLen  = 200
	maxUsernameLen    = 150
	maxDisplayNameLen = 200
)

// AdminService handles group management and user provisioning. Both are
// admin-only surfaces; the handlers enforce that before calling in.
type AdminService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(groups repository.GroupRepository, users repository.UserRepository) *AdminService {
	return &AdminService{groups: groups, users: users}
}

// CreateGroupInput carries a new group's payload.
type CreateGroupInput struct {
	Title       string
	Slug        string
	Description string
}

// UpdateGroupInput carries a group edit. The slug is immutable and
// identifies the group being edited.
type UpdateGroupInput struct {
	Slug        string
	Title       string
	Description string
}

// ProvisionUserInput carries a new user record mirrored from the
// identity provider.
type ProvisionUserInput struct {
	Username    string
	DisplayName string
	IsAdmin     bool
}

func (s *AdminService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if err := validation.RequireText("title", in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Title) > maxGroupTitleLen {
		return nil, models.NewValidationError("Group title too long (max 200 characters)")
	}
	if err := validation.ValidateGroupSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.RequireText("description", in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		Title:       strings.TrimSpace(in.Title),
		Slug:        in.Slug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.groups.Create(ctx, group); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateKey {
			return nil, models.NewValidationError("Group slug already in use")
		}
		return nil, err
	}
	return group, nil
}

func (s *AdminService) UpdateGroup(ctx context.Context, in UpdateGroupInput) (*models.Group, error) {
	group, err := s.groups.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if err := validation.RequireText("title", in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Title) > maxGroupTitleLen {
		return nil, models.NewValidationError("Group title too long (max 200 characters)")
	}
	if err := validation.RequireText("description", in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group.Title = strings.TrimSpace(in.Title)
	group.Description = strings.TrimSpace(in.Description)
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return s.groups.GetBySlug(ctx, in.Slug)
}

func (s *AdminService) ProvisionUser(ctx context.Context, in ProvisionUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if len(username) > maxUsernameLen {
		return nil, models.NewValidationError("Username too long (max 150 characters)")
	}
	if len(in.DisplayName) > maxDisplayNameLen {
		return nil, models.NewValidationError("Display name too long (max 200 characters)")
	}

	user := &models.User{
		Username:    username,
		DisplayName: strings.TrimSpace(in.DisplayName),
		IsAdmin:     in.IsAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
