package sales

import (
	"context"

	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// SaleTxRunner ejecuta el cierre de una venta dentro de una sola transacción:
// bloqueo de stock, movimientos y cabecera de venta comparten la misma tx.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		moveRepo repository.StockMoveRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
