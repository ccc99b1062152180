package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OnlyRoles lets the request through when the token carries at least
// one of the given roles.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have, ok := c.Locals("roles").([]string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		for _, r := range have {
			for _, allowed := range roles {
				if r == allowed {
					return c.Next()
				}
			}
		}
		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}

// IsAdmin guards the admin route group.
func IsAdmin() fiber.Handler {
	return OnlyRoles("Доступ только для администратора", "admin")
}

// GetUserID reads the authenticated user's id stored by AuthMiddleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user_id in context")
	}
	return uuid.Parse(raw)
}
