package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItem fila del reporte de bajo stock.
type LowStockItem struct {
	ProductID string
	SKU       string
	Name      string
	OnHand    int64
}

// SalesStats agregado de ventas de un período: unidades y recaudo.
type SalesStats struct {
	Qty     int64
	Revenue decimal.Decimal
}

// TopProduct producto más vendido de un período.
type TopProduct struct {
	ProductID string
	SKU       string
	Name      string
	Qty       int64
}

// BranchSalesStats agregado de ventas por sucursal (tablero global).
type BranchSalesStats struct {
	BranchCode string
	Qty        int64
	Revenue    decimal.Decimal
}

// SaleLineRow línea de venta aplanada con datos del producto, para los
// reportes de transacciones diarias y por rango.
type SaleLineRow struct {
	SaleID      string
	BranchCode  string
	CreatedAt   time.Time
	ProductID   string
	SKU         string
	Name        string
	Qty         int64
	UnitPrice   decimal.Decimal
	RetailPrice decimal.Decimal
}

// ReportsRepository consultas de solo lectura sobre ventas, stock, gastos e
// inversiones. No muta el libro mayor.
type ReportsRepository interface {
	LowStock(ctx context.Context, branchCode string, threshold int64) ([]LowStockItem, error)
	LowStockCount(ctx context.Context, branchCode string, threshold int64) (int64, error)
	// SalesStatsSince agrega unidades y recaudo de una sucursal desde `since`.
	SalesStatsSince(ctx context.Context, branchCode string, since time.Time) (SalesStats, error)
	TopProductsSince(ctx context.Context, branchCode string, since time.Time, limit int) ([]TopProduct, error)
	// SalesByBranchSince agrega por sucursal (modo "todas las sucursales").
	SalesByBranchSince(ctx context.Context, since time.Time) ([]BranchSalesStats, error)
	// SaleLines aplana líneas de venta con producto en un rango
	// (branchCode vacío = todas las sucursales).
	SaleLines(ctx context.Context, branchCode string, from, to time.Time) ([]SaleLineRow, error)
	ExpensesTotalSince(ctx context.Context, branchCode string, since time.Time) (decimal.Decimal, error)
	InvestmentsTotalSince(ctx context.Context, branchCode string, since time.Time) (decimal.Decimal, error)
}
