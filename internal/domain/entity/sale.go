package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem línea de venta. Name es el nombre canónico del producto capturado
// al momento de la venta (el enviado por el cliente se ignora).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	Qty       int64
	UnitPrice decimal.Decimal
}

// SaleTotals totales calculados por el servidor: tax siempre 0 y
// grand = max(0, subtotal - discount).
type SaleTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Grand    decimal.Decimal
}

// Sale es una orden de venta inmutable: una vez creada no existe endpoint de
// actualización ni borrado. Cada línea produce exactamente un StockMove con
// razón "sale" y delta = -Qty dentro de la misma transacción.
type Sale struct {
	ID         string
	BranchCode string
	Items      []SaleItem
	Totals     SaleTotals
	CreatedAt  time.Time
}
