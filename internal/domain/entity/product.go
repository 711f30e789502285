package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de catálogo: piezas (discreto) o mililitros (continuo).
const (
	UnitPieces = "pcs"
	UnitMl     = "ml"
)

// Product representa un producto del catálogo. SKU es identidad inmutable;
// el resto de atributos se modifican vía update. UnitSize es la cantidad de
// unidades base por unidad de catálogo (ej. frasco de 30 ml → UnitSize=30).
type Product struct {
	ID          string
	SKU         string
	Name        string
	Brand       string
	Category    string
	Unit        string // pcs | ml
	UnitSize    int64  // >= 1
	Price       decimal.Decimal
	RetailPrice *decimal.Decimal // costo base para márgenes; opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
