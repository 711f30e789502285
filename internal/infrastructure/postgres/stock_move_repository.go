package postgres

import (
	"context"
	"fmt"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo bitácora de movimientos sobre PostgreSQL. Solo inserta.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

// Create inserta un movimiento. ref_id queda NULL cuando no hay venta origen.
func (r *StockMoveRepo) Create(move *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (id, branch_code, product_id, delta, reason, ref_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), now())`
	_, err := r.q.Exec(context.Background(), query,
		move.ID, move.BranchCode, move.ProductID, move.Delta, move.Reason, move.RefID)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// ListByRef lista los movimientos originados por una venta.
func (r *StockMoveRepo) ListByRef(refID string) ([]*entity.StockMove, error) {
	query := `
		SELECT id, branch_code, product_id, delta, reason, COALESCE(ref_id, ''), created_at
		FROM stock_moves WHERE ref_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, refID)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMove
	for rows.Next() {
		var m entity.StockMove
		if err := rows.Scan(&m.ID, &m.BranchCode, &m.ProductID, &m.Delta, &m.Reason, &m.RefID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumDeltas suma los deltas históricos de un par (sucursal, producto).
func (r *StockMoveRepo) SumDeltas(branchCode, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM stock_moves WHERE branch_code = $1 AND product_id = $2`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, branchCode, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}
