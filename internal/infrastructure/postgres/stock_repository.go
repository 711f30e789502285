package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock de un producto en una sucursal.
func (r *StockRepo) Get(branchCode, productID string) (*entity.Stock, error) {
	query := `
		SELECT branch_code, product_id, on_hand, reorder_level, updated_at
		FROM stock WHERE branch_code = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchCode, productID).Scan(
		&s.BranchCode, &s.ProductID, &s.OnHand, &s.ReorderLevel, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT ... FOR UPDATE). Un par
// inexistente es domain.ErrNotFound, nunca una fila implícita en cero.
func (r *StockRepo) GetForUpdate(branchCode, productID string) (*entity.Stock, error) {
	query := `
		SELECT branch_code, product_id, on_hand, reorder_level, updated_at
		FROM stock WHERE branch_code = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, branchCode, productID).Scan(
		&s.BranchCode, &s.ProductID, &s.OnHand, &s.ReorderLevel, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// UpdateOnHand fija la cantidad vigente de una fila ya existente.
func (r *StockRepo) UpdateOnHand(branchCode, productID string, onHand int64) error {
	query := `
		UPDATE stock SET on_hand = $3, updated_at = now()
		WHERE branch_code = $1 AND product_id = $2`
	tag, err := r.q.Exec(context.Background(), query, branchCode, productID, onHand)
	if err != nil {
		return fmt.Errorf("update on_hand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Provision crea las filas faltantes (sucursal × producto) con la cantidad
// inicial; las existentes no se tocan.
func (r *StockRepo) Provision(productID string, branchCodes []string, initial int64) error {
	query := `
		INSERT INTO stock (branch_code, product_id, on_hand, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (branch_code, product_id) DO NOTHING`
	for _, code := range branchCodes {
		if _, err := r.q.Exec(context.Background(), query, code, productID, initial); err != nil {
			return fmt.Errorf("provision stock: %w", err)
		}
	}
	return nil
}

// DeleteByProduct retira las filas de stock de un producto en todas las sucursales.
func (r *StockRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// ListByBranch lista las filas de stock de una sucursal con datos del producto.
func (r *StockRepo) ListByBranch(branchCode string) ([]repository.StockRow, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, p.unit, s.on_hand, s.reorder_level
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.branch_code = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, branchCode)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.Unit, &row.OnHand, &row.ReorderLevel); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
