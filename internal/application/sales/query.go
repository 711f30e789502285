package sales

import (
	"context"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// RecentSalesLimit tope de filas del listado de ventas recientes.
const RecentSalesLimit = 50

// QueryUseCase lecturas de ventas: listado reciente y detalle para el recibo.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// Recent devuelve las últimas ventas de la sucursal, más nuevas primero.
// branchCode vacío agrega todas las sucursales (solo roles elevados).
func (uc *QueryUseCase) Recent(ctx context.Context, branchCode string) ([]*entity.Sale, error) {
	return uc.saleRepo.ListRecent(branchCode, RecentSalesLimit)
}

// GetByID devuelve una venta con sus líneas.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return uc.saleRepo.GetByID(id)
}
