package reports

import (
	"context"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// LowStockUseCase reporte de productos bajo el umbral de reposición.
type LowStockUseCase struct {
	reportsRepo repository.ReportsRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(reportsRepo repository.ReportsRepository) *LowStockUseCase {
	return &LowStockUseCase{reportsRepo: reportsRepo}
}

// List devuelve las filas de stock de la sucursal con existencias por debajo
// del umbral.
func (uc *LowStockUseCase) List(ctx context.Context, branchCode string) ([]dto.LowStockItemDTO, error) {
	if branchCode == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.reportsRepo.LowStock(ctx, branchCode, LowStockThreshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			OnHand:    it.OnHand,
		})
	}
	return out, nil
}
