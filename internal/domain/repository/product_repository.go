package repository

import "github.com/dukaanlabs/dukaan-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// FindByIDs resuelve productos por id; el motor de ventas lo usa para
	// capturar nombres canónicos ignorando los enviados por el cliente.
	FindByIDs(ids []string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// List busca por sku o nombre (q vacío lista todo, más recientes primero).
	List(q string) ([]*entity.Product, error)
}
