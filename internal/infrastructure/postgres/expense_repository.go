package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)
var _ repository.InvestmentRepository = (*InvestmentRepo)(nil)

// ExpenseRepo persistencia de gastos sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create inserta un gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, branch_code, amount, category, subcategory, kind,
			expense_user_id, note, created_by, created_by_name, created_by_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, now())
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		expense.ID, expense.BranchCode, expense.Amount, expense.Category, expense.Subcategory,
		expense.Kind, expense.ExpenseUserID, expense.Note,
		expense.CreatedBy, expense.CreatedByName, expense.CreatedByEmail,
	).Scan(&expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListBetween lista gastos de una sucursal (vacío = todas) en un rango opcional.
func (r *ExpenseRepo) ListBetween(branchCode string, from, to *time.Time) ([]*entity.Expense, error) {
	query := `
		SELECT id, branch_code, amount, category, subcategory, kind,
		       COALESCE(expense_user_id, ''), note, created_by, created_by_name, created_by_email, created_at
		FROM expenses
		WHERE ($1 = '' OR branch_code = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, branchCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.BranchCode, &e.Amount, &e.Category, &e.Subcategory, &e.Kind,
			&e.ExpenseUserID, &e.Note, &e.CreatedBy, &e.CreatedByName, &e.CreatedByEmail, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SummaryByCategory agrupa gastos por categoría.
func (r *ExpenseRepo) SummaryByCategory(branchCode string, from, to *time.Time) ([]repository.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE ($1 = '' OR branch_code = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		GROUP BY category
		ORDER BY 2 DESC`
	rows, err := r.q.Query(context.Background(), query, branchCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryTotal
	for rows.Next() {
		var c repository.CategoryTotal
		if err := rows.Scan(&c.Category, &c.Total, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TotalsByUser agrupa los gastos de tipo "user" por el empleado atribuido.
func (r *ExpenseRepo) TotalsByUser(branchCode string, from, to *time.Time) ([]repository.UserExpenseTotal, error) {
	query := `
		SELECT e.expense_user_id, COALESCE(u.name, ''), COALESCE(u.email, ''),
		       COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM expenses e
		LEFT JOIN users u ON u.id = e.expense_user_id
		WHERE e.kind = 'user' AND e.expense_user_id IS NOT NULL
		  AND ($1 = '' OR e.branch_code = $1)
		  AND ($2::timestamptz IS NULL OR e.created_at >= $2)
		  AND ($3::timestamptz IS NULL OR e.created_at < $3)
		GROUP BY e.expense_user_id, u.name, u.email
		ORDER BY 4 DESC`
	rows, err := r.q.Query(context.Background(), query, branchCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense totals by user: %w", err)
	}
	defer rows.Close()

	var out []repository.UserExpenseTotal
	for rows.Next() {
		var t repository.UserExpenseTotal
		if err := rows.Scan(&t.UserID, &t.Name, &t.Email, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan user expense total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TotalsByBranch agrupa todos los gastos por sucursal.
func (r *ExpenseRepo) TotalsByBranch(from, to *time.Time) ([]repository.BranchExpenseTotal, error) {
	query := `
		SELECT branch_code, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		GROUP BY branch_code
		ORDER BY 2 DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense totals by branch: %w", err)
	}
	defer rows.Close()

	var out []repository.BranchExpenseTotal
	for rows.Next() {
		var t repository.BranchExpenseTotal
		if err := rows.Scan(&t.BranchCode, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scan branch expense total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InvestmentRepo persistencia de inversiones sobre PostgreSQL.
type InvestmentRepo struct {
	q Querier
}

// NewInvestmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvestmentRepository(q Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

// Create inserta una inversión.
func (r *InvestmentRepo) Create(investment *entity.Investment) error {
	query := `
		INSERT INTO investments (id, branch_code, amount, note, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		investment.ID, investment.BranchCode, investment.Amount, investment.Note,
	).Scan(&investment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

// ListBetween lista inversiones de una sucursal (vacío = todas) en un rango opcional.
func (r *InvestmentRepo) ListBetween(branchCode string, from, to *time.Time) ([]*entity.Investment, error) {
	query := `
		SELECT id, branch_code, amount, note, created_at
		FROM investments
		WHERE ($1 = '' OR branch_code = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, branchCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Investment
	for rows.Next() {
		var inv entity.Investment
		if err := rows.Scan(&inv.ID, &inv.BranchCode, &inv.Amount, &inv.Note, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
