package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de gasto: atribuido a un empleado o a la sucursal.
const (
	ExpenseKindUser   = "user"
	ExpenseKindBranch = "branch"
)

// Expense gasto registrado contra una sucursal, con atribución al creador o
// a un empleado designado.
type Expense struct {
	ID             string
	BranchCode     string
	Amount         decimal.Decimal
	Category       string
	Subcategory    string
	Kind           string // user | branch
	ExpenseUserID  string
	Note           string
	CreatedBy      string
	CreatedByName  string
	CreatedByEmail string
	CreatedAt      time.Time
}
