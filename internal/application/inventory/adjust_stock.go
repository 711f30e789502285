package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// AdjustStockUseCase ajusta existencias por delta con bloqueo de fila
// (SELECT FOR UPDATE) y registro de movimiento en la misma transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// Adjust aplica el delta sobre la fila (sucursal, producto) y registra el
// movimiento. Falla con ErrNotFound si la fila no existe y con
// ErrInsufficientStock si el resultado quedaría negativo; en ambos casos la
// transacción se revierte completa.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (int64, error) {
	if in.BranchID == "" || in.ProductID == "" {
		return 0, domain.ErrInvalidInput
	}
	if in.Delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.MoveReasonAdjustment
	}
	// "sale" solo se origina en el motor de ventas.
	if !entity.ValidMoveReason(reason) || reason == entity.MoveReasonSale {
		return 0, domain.ErrInvalidInput
	}

	var onHand int64
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		moveRepo repository.StockMoveRepository,
	) error {
		row, err := stockRepo.GetForUpdate(in.BranchID, in.ProductID)
		if err != nil {
			return err
		}
		next := row.OnHand + in.Delta
		if next < 0 {
			return fmt.Errorf("%w: sucursal=%s producto=%s disponible=%d delta=%d",
				domain.ErrInsufficientStock, in.BranchID, in.ProductID, row.OnHand, in.Delta)
		}
		if err := stockRepo.UpdateOnHand(in.BranchID, in.ProductID, next); err != nil {
			return err
		}
		move := &entity.StockMove{
			ID:         uuid.New().String(),
			BranchCode: in.BranchID,
			ProductID:  in.ProductID,
			Delta:      in.Delta,
			Reason:     reason,
		}
		if err := moveRepo.Create(move); err != nil {
			return err
		}
		onHand = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return onHand, nil
}
