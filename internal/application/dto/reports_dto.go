package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO fila del reporte de bajo stock.
type LowStockItemDTO struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	OnHand    int64  `json:"onHand"`
}

// PeriodStatsDTO unidades y recaudo de un período.
type PeriodStatsDTO struct {
	Qty     int64           `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// WeekStatsDTO agregado de 7 días con finanzas.
type WeekStatsDTO struct {
	Qty         int64            `json:"qty"`
	Revenue     decimal.Decimal  `json:"revenue"`
	Expenses    decimal.Decimal  `json:"expenses"`
	Investments decimal.Decimal  `json:"investments"`
	Profit      decimal.Decimal  `json:"profit"`
	ROI         *decimal.Decimal `json:"roi"` // null si no hay inversiones
}

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
}

// AnalyticsResponse tablero de una sucursal.
type AnalyticsResponse struct {
	BranchID      string          `json:"branchId"`
	Today         PeriodStatsDTO  `json:"today"`
	Last7d        WeekStatsDTO    `json:"last7d"`
	TopProducts   []TopProductDTO `json:"topProducts"`
	LowStockCount int64           `json:"lowStockCount"`
}

// OverviewResponse tablero global: agregados por sucursal (solo elevados).
type OverviewResponse struct {
	Today  map[string]PeriodStatsDTO `json:"today"`
	Last7d map[string]PeriodStatsDTO `json:"last7d"`
}

// TransactionRowDTO fila combinada de transacciones diarias: venta o gasto.
type TransactionRowDTO struct {
	Type      string    `json:"type"` // sale | expense
	CreatedAt time.Time `json:"createdAt"`

	// Campos de venta
	SaleID      string          `json:"saleId,omitempty"`
	ProductID   string          `json:"productId,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name,omitempty"`
	Qty         int64           `json:"qty,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice,omitempty"`
	LineTotal   decimal.Decimal `json:"lineTotal,omitempty"`
	RetailPrice decimal.Decimal `json:"retailPrice,omitempty"`

	// Campos de gasto
	ExpenseID      string          `json:"expenseId,omitempty"`
	Kind           string          `json:"kind,omitempty"`
	Category       string          `json:"category,omitempty"`
	Subcategory    string          `json:"subcategory,omitempty"`
	Amount         decimal.Decimal `json:"amount,omitempty"`
	CreatedByName  string          `json:"createdByName,omitempty"`
	CreatedByEmail string          `json:"createdByEmail,omitempty"`
	Note           string          `json:"note,omitempty"`
}

// DayTotalsDTO totales de un día: ventas netas contra gastos.
type DayTotalsDTO struct {
	SalesSubtotal decimal.Decimal `json:"salesSubtotal"`
	SalesDiscount decimal.Decimal `json:"salesDiscount"`
	SalesNet      decimal.Decimal `json:"salesNet"`
	ExpensesTotal decimal.Decimal `json:"expensesTotal"`
	Net           decimal.Decimal `json:"net"`
}

// DailyTransactionsResponse transacciones combinadas de un día.
type DailyTransactionsResponse struct {
	BranchID string              `json:"branchId"`
	Date     string              `json:"date"` // YYYY-MM-DD
	Totals   DayTotalsDTO        `json:"totals"`
	Rows     []TransactionRowDTO `json:"rows"`
}

// DayGroupDTO un día dentro del reporte por rango.
type DayGroupDTO struct {
	Date   string              `json:"date"`
	Totals DayTotalsDTO        `json:"totals"`
	Rows   []TransactionRowDTO `json:"rows"`
}

// RangeTransactionsResponse reporte por rango de fechas.
type RangeTransactionsResponse struct {
	BranchID string        `json:"branchId"` // código o "all"
	From     string        `json:"from"`
	To       string        `json:"to"`
	Overall  DayTotalsDTO  `json:"overall"`
	Days     []DayGroupDTO `json:"days"`
}

// AddInvestmentRequest body para POST /api/reports/investments.
type AddInvestmentRequest struct {
	BranchID string          `json:"branchId"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
}

// InvestmentDTO inversión serializada.
type InvestmentDTO struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branchId"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// InvestmentListResponse listado con total acumulado.
type InvestmentListResponse struct {
	Total decimal.Decimal `json:"total"`
	Items []InvestmentDTO `json:"items"`
}

// AddExpenseRequest body para POST /api/reports/expenses.
type AddExpenseRequest struct {
	BranchID            string          `json:"branchId"`
	Amount              decimal.Decimal `json:"amount"`
	Category            string          `json:"category,omitempty"`
	Subcategory         string          `json:"subcategory,omitempty"`
	Kind                string          `json:"kind,omitempty"` // user | branch
	ExpenseUserID       string          `json:"expenseUserId,omitempty"`
	AttributeToEmployee bool            `json:"attributeToEmployee,omitempty"`
	Note                string          `json:"note,omitempty"`
}

// ExpenseDTO gasto serializado.
type ExpenseDTO struct {
	ID             string          `json:"id"`
	BranchID       string          `json:"branchId"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	Kind           string          `json:"kind"`
	ExpenseUserID  string          `json:"expenseUserId,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedBy      string          `json:"createdBy,omitempty"`
	CreatedByName  string          `json:"createdByName,omitempty"`
	CreatedByEmail string          `json:"createdByEmail,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ExpenseListResponse listado con total acumulado.
type ExpenseListResponse struct {
	Total decimal.Decimal `json:"total"`
	Items []ExpenseDTO    `json:"items"`
}

// CategoryTotalDTO resumen de gastos por categoría.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// UserExpenseTotalDTO gastos atribuidos por usuario.
type UserExpenseTotalDTO struct {
	UserID string          `json:"userId"`
	Name   string          `json:"name,omitempty"`
	Email  string          `json:"email,omitempty"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

// BranchExpenseTotalDTO gastos agregados por sucursal.
type BranchExpenseTotalDTO struct {
	BranchID string          `json:"branchId"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}
