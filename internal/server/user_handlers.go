package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProvisionUser handles POST /api/users (admin only). User records
// mirror identities managed by the external provider; there is no
// signup flow here.
func (s *Server) ProvisionUser(c *fiber.Ctx) error {
	var req struct {
		Username    string `json:"username"`
		DisplayName string `json:"display_name,omitempty"`
		IsAdmin     bool   `json:"is_admin,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.admin.ProvisionUser(c.UserContext(), service.ProvisionUserInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
