package repository

import "github.com/dukaanlabs/dukaan-api/internal/domain/entity"

// StockRow fila de stock enriquecida con datos del producto para listados.
type StockRow struct {
	ProductID    string
	SKU          string
	Name         string
	Unit         string
	OnHand       int64
	ReorderLevel int64
}

// StockRepository puerto del libro mayor de existencias. Las mutaciones de
// OnHand solo ocurren dentro de una transacción del motor (TxRunner).
type StockRepository interface {
	Get(branchCode, productID string) (*entity.Stock, error)
	// GetForUpdate carga la fila bloqueándola (SELECT ... FOR UPDATE).
	// Devuelve domain.ErrNotFound si el par no existe.
	GetForUpdate(branchCode, productID string) (*entity.Stock, error)
	// UpdateOnHand fija la cantidad vigente de una fila ya existente.
	UpdateOnHand(branchCode, productID string, onHand int64) error
	// Provision crea filas faltantes (branch × producto) con la cantidad
	// inicial dada; las existentes no se tocan.
	Provision(productID string, branchCodes []string, initial int64) error
	DeleteByProduct(productID string) error
	ListByBranch(branchCode string) ([]StockRow, error)
}
