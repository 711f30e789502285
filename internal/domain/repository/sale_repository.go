package repository

import (
	"time"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas (cabecera + líneas).
// Las ventas son inmutables: no existe Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// ListRecent devuelve las ventas más recientes de una sucursal
	// (branchCode vacío = todas), más nuevas primero.
	ListRecent(branchCode string, limit int) ([]*entity.Sale, error)
	// ListBetween devuelve las ventas de una sucursal en un rango de fechas
	// (branchCode vacío = todas las sucursales).
	ListBetween(branchCode string, from, to time.Time) ([]*entity.Sale, error)
}
