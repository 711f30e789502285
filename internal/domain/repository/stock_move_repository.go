package repository

import "github.com/dukaanlabs/dukaan-api/internal/domain/entity"

// StockMoveRepository puerto de la bitácora de movimientos (solo inserción;
// las filas jamás se actualizan ni se borran).
type StockMoveRepository interface {
	Create(move *entity.StockMove) error
	ListByRef(refID string) ([]*entity.StockMove, error)
	// SumDeltas suma los deltas históricos de un par (sucursal, producto);
	// debe coincidir con Stock.OnHand (invariante de conciliación).
	SumDeltas(branchCode, productID string) (int64, error)
}
