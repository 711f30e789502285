package repository

import "github.com/dukaanlabs/dukaan-api/internal/domain/entity"

// BranchRepository puerto de persistencia para el registro de sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByCode(code string) (*entity.Branch, error)
	List() ([]*entity.Branch, error)
	ListByCodes(codes []string) ([]*entity.Branch, error)
}
