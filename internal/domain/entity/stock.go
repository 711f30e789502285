package entity

import "time"

// Stock representa la existencia actual de un producto en una sucursal.
// Hay a lo sumo una fila por par (BranchCode, ProductID); el par es la llave
// natural. OnHand se cuenta en unidades base, nunca negativo, y se muta
// únicamente a través del motor transaccional.
type Stock struct {
	BranchCode   string
	ProductID    string
	OnHand       int64
	ReorderLevel int64
	UpdatedAt    time.Time
}
