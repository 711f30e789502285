package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas (cabecera + líneas) sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Se espera ejecutar dentro de la tx
// del cierre de venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	headerQuery := `
		INSERT INTO sales (id, branch_code, subtotal, discount, tax, grand, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING created_at`
	err := r.q.QueryRow(ctx, headerQuery,
		sale.ID, sale.BranchCode,
		sale.Totals.Subtotal, sale.Totals.Discount, sale.Totals.Tax, sale.Totals.Grand,
	).Scan(&sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, name, qty, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range sale.Items {
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, sale.ID, it.ProductID, it.Name, it.Qty, it.UnitPrice); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, branch_code, subtotal, discount, tax, grand, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BranchCode,
		&s.Totals.Subtotal, &s.Totals.Discount, &s.Totals.Tax, &s.Totals.Grand,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	items, err := r.itemsFor(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// ListRecent devuelve las ventas más recientes de una sucursal
// (branchCode vacío = todas), más nuevas primero.
func (r *SaleRepo) ListRecent(branchCode string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, branch_code, subtotal, discount, tax, grand, created_at
		FROM sales
		WHERE ($1 = '' OR branch_code = $1)
		ORDER BY created_at DESC
		LIMIT $2`
	return r.list(query, branchCode, limit)
}

// ListBetween devuelve las ventas de una sucursal en [from, to)
// (branchCode vacío = todas las sucursales).
func (r *SaleRepo) ListBetween(branchCode string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, branch_code, subtotal, discount, tax, grand, created_at
		FROM sales
		WHERE ($1 = '' OR branch_code = $1)
		  AND created_at >= $2 AND created_at < $3
		ORDER BY created_at`
	return r.list(query, branchCode, from, to)
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.BranchCode,
			&s.Totals.Subtotal, &s.Totals.Discount, &s.Totals.Tax, &s.Totals.Grand,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range out {
		s.Items = items[s.ID]
	}
	return out, nil
}

// itemsFor carga las líneas de un conjunto de ventas en una sola consulta.
func (r *SaleRepo) itemsFor(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, name, qty, unit_price
		FROM sale_items WHERE sale_id = ANY($1)
		ORDER BY sale_id, id`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.Qty, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, rows.Err()
}
