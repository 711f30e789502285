package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// LocalBranchTarget sucursal objetivo resuelta por el middleware de ámbito:
// un código concreto, o "" cuando un rol elevado pide el agregado "all".
const LocalBranchTarget = "branch_target"

// branchIDBody body mínimo para extraer branchId cuando no viene por URL.
type branchIDBody struct {
	BranchID string `json:"branchId"`
}

// BranchScopeMiddleware resuelve la sucursal objetivo (params, query o body)
// y verifica que el usuario pueda operar sobre ella. Para managers relee el
// ámbito de la DB, así una reasignación surte efecto sin re-login; si la DB
// no responde cae a los claims del token y lo deja registrado.
func BranchScopeMiddleware(userRepo repository.UserRepository, logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.Params("branchId")
		if target == "" {
			target = c.Query("branchId")
		}
		if target == "" && len(c.Body()) > 0 {
			var body branchIDBody
			if err := c.BodyParser(&body); err == nil {
				target = body.BranchID
			}
		}
		if target == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_BRANCH", Message: "branchId es requerido"})
		}

		role := GetRole(c)
		scope := GetTokenScope(c)
		if !entity.ElevatedRole(role) {
			if user, err := userRepo.FindByID(GetUserID(c)); err == nil {
				scope = user.Scope
			} else {
				logger.Warn().Err(err).Str("user", GetUserID(c)).
					Msg("no se pudo refrescar el ámbito; se usan los claims del token")
			}
		}

		// "all" agrega todas las sucursales; reservado a roles elevados.
		if target == entity.AggregateAllBranches {
			if !entity.ElevatedRole(role) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN_BRANCH", Message: "solo admin u owner pueden consultar todas las sucursales"})
			}
			c.Locals(LocalBranchTarget, "")
			return c.Next()
		}

		if !scope.Allows(target) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN_BRANCH", Message: "sucursal fuera del ámbito del usuario"})
		}
		c.Locals(LocalBranchTarget, target)
		return c.Next()
	}
}

// GetBranchTarget devuelve la sucursal objetivo resuelta ("" = todas).
func GetBranchTarget(c *fiber.Ctx) string {
	v := c.Locals(LocalBranchTarget)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
