package inventory

import (
	"context"

	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la primitiva transaccional compartida del
// motor de inventario: ajustes y ventas usan el mismo mecanismo de bloqueo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		moveRepo repository.StockMoveRepository,
	) error) error
}
