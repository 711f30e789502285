package sales

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// CreateSaleUseCase cierra ventas de forma atómica: descuenta stock de todas
// las líneas, registra un movimiento por línea y persiste la venta en una sola
// transacción. Si cualquier línea falla, nada queda escrito.
type CreateSaleUseCase struct {
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	txRunner    SaleTxRunner
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	txRunner SaleTxRunner,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		branchRepo:  branchRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
	}
}

// Create valida la solicitud, captura nombres canónicos del catálogo y ejecuta
// el cierre transaccional. Devuelve ErrOutOfStock (envuelto con detalle) si
// alguna línea excede lo disponible.
func (uc *CreateSaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if in.BranchID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountRs.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Qty <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	if _, err := uc.branchRepo.GetByCode(in.BranchID); err != nil {
		return nil, err
	}

	// Nombres canónicos: el nombre enviado por el cliente nunca se persiste.
	ids := distinctProductIDs(in.Items)
	products, err := uc.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
	}

	sale := &entity.Sale{
		ID:         uuid.New().String(),
		BranchCode: in.BranchID,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		moveRepo repository.StockMoveRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloqueo en orden ascendente de productId para evitar deadlocks
		// entre ventas concurrentes con líneas cruzadas.
		locked := make(map[string]*entity.Stock, len(ids))
		for _, id := range ids {
			row, err := stockRepo.GetForUpdate(in.BranchID, id)
			if err != nil {
				return err
			}
			locked[id] = row
		}

		subtotal := decimal.Zero
		items := make([]entity.SaleItem, 0, len(in.Items))
		for _, line := range in.Items {
			row := locked[line.ProductID]
			if row.OnHand < line.Qty {
				return fmt.Errorf("%w: sucursal=%s producto=%s disponible=%d solicitado=%d",
					domain.ErrOutOfStock, in.BranchID, line.ProductID, row.OnHand, line.Qty)
			}
			row.OnHand -= line.Qty

			move := &entity.StockMove{
				ID:         uuid.New().String(),
				BranchCode: in.BranchID,
				ProductID:  line.ProductID,
				Delta:      -line.Qty,
				Reason:     entity.MoveReasonSale,
				RefID:      sale.ID,
			}
			if err := moveRepo.Create(move); err != nil {
				return err
			}

			items = append(items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Name:      names[line.ProductID],
				Qty:       line.Qty,
				UnitPrice: line.UnitPrice,
			})
			subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Qty)))
		}

		for _, id := range ids {
			row := locked[id]
			if err := stockRepo.UpdateOnHand(in.BranchID, id, row.OnHand); err != nil {
				return err
			}
		}

		grand := subtotal.Sub(in.DiscountRs)
		if grand.IsNegative() {
			grand = decimal.Zero
		}
		sale.Items = items
		sale.Totals = entity.SaleTotals{
			Subtotal: subtotal,
			Discount: in.DiscountRs,
			Tax:      decimal.Zero,
			Grand:    grand,
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// distinctProductIDs devuelve los ids únicos en orden ascendente. Las líneas
// repetidas del mismo producto comparten la fila bloqueada.
func distinctProductIDs(items []dto.SaleItemRequest) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	sort.Strings(ids)
	return ids
}
