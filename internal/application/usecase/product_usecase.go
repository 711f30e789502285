package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo. Al crear un producto se aprovisiona stock
// inicial (igual a unitSize) en todas las sucursales existentes; al borrarlo
// se retiran sus filas de stock.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	stockRepo   repository.StockRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	stockRepo repository.StockRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		branchRepo:  branchRepo,
		stockRepo:   stockRepo,
	}
}

// Create da de alta un producto y aprovisiona su stock inicial por sucursal.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPieces
	}
	if unit != entity.UnitPieces && unit != entity.UnitMl {
		return nil, domain.ErrInvalidInput
	}
	unitSize := in.UnitSize
	if unitSize <= 0 {
		unitSize = 1
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        name,
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		Unit:        unit,
		UnitSize:    unitSize,
		Price:       in.Price,
		RetailPrice: in.RetailPrice,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	branches, err := uc.branchRepo.List()
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(branches))
	for _, b := range branches {
		codes = append(codes, b.Code)
	}
	if len(codes) > 0 {
		if err := uc.stockRepo.Provision(product.ID, codes, unitSize); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// GetByID devuelve un producto del catálogo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(id)
}

// Update modifica los campos presentes en la solicitud.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		if *in.Unit != entity.UnitPieces && *in.Unit != entity.UnitMl {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.UnitSize != nil {
		if *in.UnitSize <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product.UnitSize = *in.UnitSize
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.RetailPrice != nil {
		product.RetailPrice = in.RetailPrice
	}

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina el producto y sus filas de stock. Los movimientos y ventas
// históricos se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(id); err != nil {
		return err
	}
	if err := uc.stockRepo.DeleteByProduct(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

// List busca en el catálogo por sku o nombre (q vacío lista todo).
func (uc *ProductUseCase) List(ctx context.Context, q string) ([]*entity.Product, error) {
	return uc.productRepo.List(strings.TrimSpace(q))
}
