package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/sales"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/pdf"
)

// SalesHandler maneja el cierre de ventas, el listado reciente y el recibo.
type SalesHandler struct {
	createUC   *sales.CreateSaleUseCase
	queryUC    *sales.QueryUseCase
	branchRepo branchGetter
	userRepo   repository.UserRepository
	receipts   *pdf.ReceiptGenerator
}

// branchGetter lookup mínimo de sucursal para el recibo.
type branchGetter interface {
	GetByCode(code string) (*entity.Branch, error)
}

// NewSalesHandler construye el handler.
func NewSalesHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.QueryUseCase, branchRepo branchGetter, userRepo repository.UserRepository, receipts *pdf.ReceiptGenerator) *SalesHandler {
	return &SalesHandler{createUC: createUC, queryUC: queryUC, branchRepo: branchRepo, userRepo: userRepo, receipts: receipts}
}

// Create godoc
// @Summary      Cerrar una venta (descuenta stock atómicamente)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "branchId, items, discountRs"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.BranchID = GetBranchTarget(c)
	sale, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "venta inválida: se requieren branchId y al menos una línea con qty > 0"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// Recent godoc
// @Summary      Últimas ventas de la sucursal
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/recent [get]
func (h *SalesHandler) Recent(c *fiber.Ctx) error {
	out, err := h.queryUC.Recent(c.Context(), GetBranchTarget(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := make([]dto.SaleResponse, 0, len(out))
	for _, s := range out {
		resp = append(resp, toSaleResponse(s))
	}
	return c.JSON(resp)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	sale, err := h.queryUC.GetByID(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// El recibo también respeta el ámbito del usuario. Igual que el middleware
	// de ámbito, se relee de la DB para que una reasignación surta efecto sin
	// re-login; si la DB no responde se cae a los claims del token.
	if !entity.ElevatedRole(GetRole(c)) {
		scope := GetTokenScope(c)
		if user, lookupErr := h.userRepo.FindByID(GetUserID(c)); lookupErr == nil {
			scope = user.Scope
		}
		if !scope.Allows(sale.BranchCode) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN_BRANCH", Message: "sucursal fuera del ámbito del usuario"})
		}
	}

	branch, err := h.branchRepo.GetByCode(sale.BranchCode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	doc, err := h.receipts.GenerateReceipt(c.Context(), sale, branch)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+sale.ID+`.pdf"`)
	return c.Send(doc)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
		})
	}
	return dto.SaleResponse{
		ID:       s.ID,
		BranchID: s.BranchCode,
		Items:    items,
		Totals: dto.SaleTotalsResponse{
			Subtotal: s.Totals.Subtotal,
			Discount: s.Totals.Discount,
			Tax:      s.Totals.Tax,
			Grand:    s.Totals.Grand,
		},
		CreatedAt: s.CreatedAt,
	}
}
