package repository

import "github.com/dukaanlabs/dukaan-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios. El middleware de
// ámbito lo consulta en cada petición de manager para que una reasignación
// de sucursal surta efecto sin re-login.
type UserRepository interface {
	Create(user *entity.User) error
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// ListStaff devuelve usuarios con rol manager o admin (listado de
	// sucursales con encargados).
	ListStaff() ([]*entity.User, error)
}
