package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas agregadas de solo lectura sobre PostgreSQL.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// LowStock lista productos de la sucursal con existencias bajo el umbral.
func (r *ReportsRepo) LowStock(ctx context.Context, branchCode string, threshold int64) ([]repository.LowStockItem, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, s.on_hand
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.branch_code = $1 AND s.on_hand < $2
		ORDER BY s.on_hand, p.name`
	rows, err := r.q.Query(ctx, query, branchCode, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.Name, &it.OnHand); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// LowStockCount cuenta los productos bajo el umbral.
func (r *ReportsRepo) LowStockCount(ctx context.Context, branchCode string, threshold int64) (int64, error) {
	query := `SELECT COUNT(*) FROM stock WHERE branch_code = $1 AND on_hand < $2`
	var count int64
	if err := r.q.QueryRow(ctx, query, branchCode, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// SalesStatsSince agrega unidades y recaudo neto de una sucursal desde `since`.
func (r *ReportsRepo) SalesStatsSince(ctx context.Context, branchCode string, since time.Time) (repository.SalesStats, error) {
	query := `
		SELECT COALESCE(SUM(i.qty), 0),
		       COALESCE(SUM(i.qty * i.unit_price), 0)
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE ($1 = '' OR s.branch_code = $1) AND s.created_at >= $2`
	var stats repository.SalesStats
	if err := r.q.QueryRow(ctx, query, branchCode, since).Scan(&stats.Qty, &stats.Revenue); err != nil {
		return repository.SalesStats{}, fmt.Errorf("sales stats: %w", err)
	}
	return stats, nil
}

// TopProductsSince productos más vendidos por unidades desde `since`.
func (r *ReportsRepo) TopProductsSince(ctx context.Context, branchCode string, since time.Time, limit int) ([]repository.TopProduct, error) {
	query := `
		SELECT i.product_id, COALESCE(p.sku, ''), COALESCE(p.name, i.name), SUM(i.qty) AS qty
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE ($1 = '' OR s.branch_code = $1) AND s.created_at >= $2
		GROUP BY i.product_id, p.sku, p.name, i.name
		ORDER BY qty DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, branchCode, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.Qty); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SalesByBranchSince agrega unidades y recaudo por sucursal desde `since`.
func (r *ReportsRepo) SalesByBranchSince(ctx context.Context, since time.Time) ([]repository.BranchSalesStats, error) {
	query := `
		SELECT s.branch_code, COALESCE(SUM(i.qty), 0), COALESCE(SUM(i.qty * i.unit_price), 0)
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE s.created_at >= $1
		GROUP BY s.branch_code
		ORDER BY s.branch_code`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales by branch: %w", err)
	}
	defer rows.Close()

	var out []repository.BranchSalesStats
	for rows.Next() {
		var b repository.BranchSalesStats
		if err := rows.Scan(&b.BranchCode, &b.Qty, &b.Revenue); err != nil {
			return nil, fmt.Errorf("scan branch stats: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SaleLines aplana líneas de venta con producto en [from, to).
func (r *ReportsRepo) SaleLines(ctx context.Context, branchCode string, from, to time.Time) ([]repository.SaleLineRow, error) {
	query := `
		SELECT s.id, s.branch_code, s.created_at,
		       i.product_id, COALESCE(p.sku, ''), COALESCE(p.name, i.name),
		       i.qty, i.unit_price, COALESCE(p.retail_price, 0)
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE ($1 = '' OR s.branch_code = $1)
		  AND s.created_at >= $2 AND s.created_at < $3
		ORDER BY s.created_at`
	rows, err := r.q.Query(ctx, query, branchCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("sale lines: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleLineRow
	for rows.Next() {
		var l repository.SaleLineRow
		if err := rows.Scan(
			&l.SaleID, &l.BranchCode, &l.CreatedAt,
			&l.ProductID, &l.SKU, &l.Name,
			&l.Qty, &l.UnitPrice, &l.RetailPrice,
		); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ExpensesTotalSince total de gastos de una sucursal desde `since`.
func (r *ReportsRepo) ExpensesTotalSince(ctx context.Context, branchCode string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE ($1 = '' OR branch_code = $1) AND created_at >= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, branchCode, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("expenses total: %w", err)
	}
	return total, nil
}

// InvestmentsTotalSince total de inversiones de una sucursal desde `since`.
func (r *ReportsRepo) InvestmentsTotalSince(ctx context.Context, branchCode string, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM investments
		WHERE ($1 = '' OR branch_code = $1) AND created_at >= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, branchCode, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("investments total: %w", err)
	}
	return total, nil
}
