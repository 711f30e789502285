package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
)

// RequireAdmin restringe la ruta al rol admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol admin"})
		}
		return c.Next()
	}
}

// RequireElevated restringe la ruta a roles con ámbito total (admin u owner).
func RequireElevated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !entity.ElevatedRole(GetRole(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol admin u owner"})
		}
		return c.Next()
	}
}
