package entity

import "time"

// Razones de movimiento de stock.
const (
	MoveReasonPurchase    = "purchase"
	MoveReasonSale        = "sale"
	MoveReasonAdjustment  = "adjustment"
	MoveReasonTransferIn  = "transfer-in"
	MoveReasonTransferOut = "transfer-out"
)

// ValidMoveReason indica si reason pertenece al catálogo de razones.
func ValidMoveReason(reason string) bool {
	switch reason {
	case MoveReasonPurchase, MoveReasonSale, MoveReasonAdjustment,
		MoveReasonTransferIn, MoveReasonTransferOut:
		return true
	}
	return false
}

// StockMove es el registro inmutable de un cambio de existencias: delta con
// signo, razón, y referencia opcional a la venta que lo originó. Nunca se
// actualiza ni se borra; la suma de deltas de un par (sucursal, producto)
// debe igualar el OnHand vigente (invariante de conciliación).
type StockMove struct {
	ID         string
	BranchCode string
	ProductID  string
	Delta      int64
	Reason     string
	RefID      string // id de la venta origen cuando Reason = sale
	CreatedAt  time.Time
}
