package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles POST /api/users/:username/follow
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	follow, err := s.publish.Follow(ctx, userID, c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowAuthor handles DELETE /api/users/:username/follow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if err := s.publish.Unfollow(ctx, userID, c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
