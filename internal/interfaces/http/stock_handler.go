package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/inventory"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
)

// StockHandler maneja lecturas y ajustes de existencias.
type StockHandler struct {
	adjustUC *inventory.AdjustStockUseCase
	queryUC  *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjustUC *inventory.AdjustStockUseCase, queryUC *inventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, queryUC: queryUC}
}

// List godoc
// @Summary      Stock de una sucursal con datos del producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal"
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	target := GetBranchTarget(c)
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branchId debe ser una sucursal concreta"})
	}
	rows, err := h.queryUC.ListByBranch(c.Context(), target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	resp := make([]dto.StockRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.StockRowResponse{
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Name:      r.Name,
			Unit:      r.Unit,
			OnHand:    r.OnHand,
		})
	}
	return c.JSON(resp)
}

// Adjust godoc
// @Summary      Ajustar existencias por delta (recepciones, mermas, correcciones)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "branchId, productId, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.BranchID = GetBranchTarget(c)
	onHand, err := h.adjustUC.Adjust(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no existe fila de stock para ese producto en esa sucursal"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta debe ser distinto de cero y la razón válida (no sale)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AdjustStockResponse{OnHand: onHand})
}
