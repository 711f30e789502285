package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta enviada por el cliente. Name se ignora:
// el servidor siempre captura el nombre canónico del catálogo.
type SaleItemRequest struct {
	ProductID string          `json:"productId"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Name      string          `json:"name,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	BranchID   string            `json:"branchId"`
	Items      []SaleItemRequest `json:"items"`
	DiscountRs decimal.Decimal   `json:"discountRs,omitempty"`
}

// SaleItemResponse línea persistida con nombre canónico.
type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SaleTotalsResponse totales calculados por el servidor.
type SaleTotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Grand    decimal.Decimal `json:"grand"`
}

// SaleResponse venta persistida.
type SaleResponse struct {
	ID        string             `json:"id"`
	BranchID  string             `json:"branchId"`
	Items     []SaleItemResponse `json:"items"`
	Totals    SaleTotalsResponse `json:"totals"`
	CreatedAt time.Time          `json:"createdAt"`
}
