package main

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	bySKU map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{bySKU: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	if _, ok := r.bySKU[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.bySKU[p.SKU] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.bySKU {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindByIDs(ids []string) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Update(p *entity.Product) error { return nil }

func (r *memProductRepo) Delete(id string) error { return nil }

func (r *memProductRepo) List(q string) ([]*entity.Product, error) {
	skus := make([]string, 0, len(r.bySKU))
	for sku := range r.bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	out := make([]*entity.Product, 0, len(skus))
	for _, sku := range skus {
		cp := *r.bySKU[sku]
		out = append(out, &cp)
	}
	return out, nil
}

type memStockRepo struct {
	rows map[string]*entity.Stock // llave: branch|product
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: map[string]*entity.Stock{}}
}

func stockKey(branchCode, productID string) string { return branchCode + "|" + productID }

func (r *memStockRepo) Get(branchCode, productID string) (*entity.Stock, error) {
	row, ok := r.rows[stockKey(branchCode, productID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(branchCode, productID string) (*entity.Stock, error) {
	return r.Get(branchCode, productID)
}

func (r *memStockRepo) UpdateOnHand(branchCode, productID string, onHand int64) error {
	row, ok := r.rows[stockKey(branchCode, productID)]
	if !ok {
		return domain.ErrNotFound
	}
	row.OnHand = onHand
	return nil
}

func (r *memStockRepo) Provision(productID string, branchCodes []string, initial int64) error {
	for _, code := range branchCodes {
		k := stockKey(code, productID)
		if _, ok := r.rows[k]; !ok {
			r.rows[k] = &entity.Stock{BranchCode: code, ProductID: productID, OnHand: initial}
		}
	}
	return nil
}

func (r *memStockRepo) DeleteByProduct(productID string) error { return nil }

func (r *memStockRepo) ListByBranch(branchCode string) ([]repository.StockRow, error) {
	return nil, nil
}

var testCodes = []string{"karachi-1", "lahore-1"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Siembra desde cero: 30 productos y cada fila de stock arranca en
// initialBottles × UnitSize unidades base (10 frascos de 30 ml → 300).
func TestSeedCatalog_AprovisionaUnidadesBasePorSucursal(t *testing.T) {
	products := newMemProductRepo()
	stock := newMemStockRepo()

	created, raised, err := seedCatalog(products, stock, testCodes)
	require.NoError(t, err)
	assert.Equal(t, len(flavors)*len(strengths), created)
	assert.Zero(t, raised, "sin filas previas no hay nada que subir")

	require.Len(t, stock.rows, created*len(testCodes))
	for _, row := range stock.rows {
		assert.Equal(t, int64(initialBottles*30), row.OnHand)
	}
}

// Una fila del catálogo por debajo del objetivo se sube hasta él; las que ya
// están en o sobre el objetivo no se tocan. Correr el seed dos veces es
// idempotente.
func TestSeedCatalog_SubeFilasPorDebajoDelObjetivo(t *testing.T) {
	products := newMemProductRepo()
	stock := newMemStockRepo()

	_, _, err := seedCatalog(products, stock, testCodes)
	require.NoError(t, err)

	p, err := products.GetBySKU(skuFor("Mango Tango", 3))
	require.NoError(t, err)
	require.NoError(t, stock.UpdateOnHand("karachi-1", p.ID, 40))
	require.NoError(t, stock.UpdateOnHand("lahore-1", p.ID, 500))

	created, raised, err := seedCatalog(products, stock, testCodes)
	require.NoError(t, err)
	assert.Zero(t, created, "el catálogo ya existe")
	assert.Equal(t, 1, raised)

	low, _ := stock.Get("karachi-1", p.ID)
	assert.Equal(t, int64(300), low.OnHand, "la fila baja se sube al objetivo")
	high, _ := stock.Get("lahore-1", p.ID)
	assert.Equal(t, int64(500), high.OnHand, "una fila sobre el objetivo no se baja")
}

// El backfill crea en cero la fila faltante de un producto ajeno al catálogo
// y no toca las existentes.
func TestBackfillStock_CreaFilasFaltantesEnCero(t *testing.T) {
	products := newMemProductRepo()
	stock := newMemStockRepo()

	require.NoError(t, products.Create(&entity.Product{
		ID: "p-ext", SKU: "EXT-001", Name: "Cargador USB", Unit: entity.UnitPieces, UnitSize: 1,
	}))
	require.NoError(t, stock.Provision("p-ext", []string{"karachi-1"}, 7))

	n, err := backfillStock(products, stock, testCodes)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing, err := stock.Get("lahore-1", "p-ext")
	require.NoError(t, err)
	assert.Zero(t, missing.OnHand, "la fila faltante se respalda en cero")

	existing, _ := stock.Get("karachi-1", "p-ext")
	assert.Equal(t, int64(7), existing.OnHand, "la fila existente no se toca")
}
