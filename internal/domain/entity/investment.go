package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment inversión de capital registrada contra una sucursal.
type Investment struct {
	ID         string
	BranchCode string
	Amount     decimal.Decimal
	Note       string
	CreatedAt  time.Time
}
