package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/usecase"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
)

// BranchHandler maneja el registro de sucursales y la asignación de encargados.
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sucursal (solo admin)
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "code, name, address, phone"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código de sucursal ya existe"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos (code en minúsculas con guiones)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toBranchResponse(out))
}

// List godoc
// @Summary      Listar sucursales visibles para el usuario
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchResponse
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForScope(c.Context(), GetUserID(c), GetTokenScope(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := make([]dto.BranchResponse, 0, len(out))
	for _, b := range out {
		resp = append(resp, toBranchResponse(b))
	}
	return c.JSON(resp)
}

// ListWithManagers godoc
// @Summary      Listar sucursales con encargados (solo admin)
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchWithManagers
// @Router       /api/branches/with-managers [get]
func (h *BranchHandler) ListWithManagers(c *fiber.Ctx) error {
	out, err := h.uc.ListWithManagers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AssignManager godoc
// @Summary      Asignar encargado a la sucursal (solo admin)
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de sucursal"
// @Param        body  body  dto.AssignManagerRequest  true  "userId"
// @Success      200   {object}  dto.AssignManagerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branches/{code}/assign [patch]
func (h *BranchHandler) AssignManager(c *fiber.Ctx) error {
	return h.assign(c, h.uc.AssignManager)
}

// UnassignManager godoc
// @Summary      Quitar encargado de la sucursal (solo admin)
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de sucursal"
// @Param        body  body  dto.AssignManagerRequest  true  "userId"
// @Success      200   {object}  dto.AssignManagerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/branches/{code}/unassign [patch]
func (h *BranchHandler) UnassignManager(c *fiber.Ctx) error {
	return h.assign(c, h.uc.UnassignManager)
}

func (h *BranchHandler) assign(c *fiber.Ctx, op func(ctx context.Context, branchCode, userID string) (*entity.User, error)) error {
	code := c.Params("code")
	var in dto.AssignManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := op(c.Context(), code, in.UserID)
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal o usuario no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y userId son requeridos; los roles elevados no se desasignan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := dto.AssignManagerResponse{Ok: true}
	resp.User.ID = user.ID
	resp.User.Role = user.Role
	resp.User.Branches = user.Scope.String()
	return c.JSON(resp)
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		Code:      b.Code,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
