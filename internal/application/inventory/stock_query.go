package inventory

import (
	"context"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// StockQueryUseCase lecturas de existencias por sucursal.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo}
}

// ListByBranch devuelve las filas de stock de la sucursal con datos del
// producto para el tablero del punto de venta.
func (uc *StockQueryUseCase) ListByBranch(ctx context.Context, branchCode string) ([]repository.StockRow, error) {
	if branchCode == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByBranch(branchCode)
}
