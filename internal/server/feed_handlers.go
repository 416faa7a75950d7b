package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetHomeFeed handles GET /api/feed?page=N
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	page, err := s.composer.Home(c.UserContext(), pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetGroupFeed handles GET /api/groups/:slug/posts?page=N
func (s *Server) GetGroupFeed(c *fiber.Ctx) error {
	page, err := s.composer.Group(c.UserContext(), c.Params("slug"), pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetProfileFeed handles GET /api/users/:username/posts?page=N
func (s *Server) GetProfileFeed(c *fiber.Ctx) error {
	viewer, _ := s.optionalUserID(c)

	page, err := s.composer.Profile(c.UserContext(), c.Params("username"), viewer, pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetFollowingFeed handles GET /api/feed/following?page=N
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.composer.Following(c.UserContext(), userID, pageNumber(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
