package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Category    string           `json:"category,omitempty"`
	Unit        string           `json:"unit,omitempty"` // pcs | ml
	UnitSize    int64            `json:"unitSize,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	RetailPrice *decimal.Decimal `json:"retailPrice,omitempty"`
}

// UpdateProductRequest body para PATCH /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	SKU         *string          `json:"sku,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitSize    *int64           `json:"unitSize,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	RetailPrice *decimal.Decimal `json:"retailPrice,omitempty"`
}

// ProductResponse producto serializado.
type ProductResponse struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Category    string           `json:"category,omitempty"`
	Unit        string           `json:"unit"`
	UnitSize    int64            `json:"unitSize"`
	Price       decimal.Decimal  `json:"price"`
	RetailPrice *decimal.Decimal `json:"retailPrice,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
