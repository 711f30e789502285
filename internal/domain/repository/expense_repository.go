package repository

import (
	"time"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CategoryTotal total de gastos agrupado por categoría.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int64
}

// UserExpenseTotal total de gastos atribuidos a un usuario.
type UserExpenseTotal struct {
	UserID string
	Name   string
	Email  string
	Total  decimal.Decimal
	Count  int64
}

// BranchExpenseTotal total de gastos por sucursal.
type BranchExpenseTotal struct {
	BranchCode string
	Total      decimal.Decimal
	Count      int64
}

// ExpenseRepository puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	// ListBetween lista gastos de una sucursal (vacío = todas) en un rango;
	// from/to nil significan sin cota.
	ListBetween(branchCode string, from, to *time.Time) ([]*entity.Expense, error)
	SummaryByCategory(branchCode string, from, to *time.Time) ([]CategoryTotal, error)
	TotalsByUser(branchCode string, from, to *time.Time) ([]UserExpenseTotal, error)
	TotalsByBranch(from, to *time.Time) ([]BranchExpenseTotal, error)
}

// InvestmentRepository puerto de persistencia para inversiones.
type InvestmentRepository interface {
	Create(investment *entity.Investment) error
	ListBetween(branchCode string, from, to *time.Time) ([]*entity.Investment, error)
}
