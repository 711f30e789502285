package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/sales"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memBranchRepo struct {
	branches map[string]*entity.Branch
}

func (r *memBranchRepo) Create(b *entity.Branch) error {
	if _, ok := r.branches[b.Code]; ok {
		return domain.ErrDuplicate
	}
	r.branches[b.Code] = b
	return nil
}

func (r *memBranchRepo) GetByCode(code string) (*entity.Branch, error) {
	b, ok := r.branches[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *memBranchRepo) List() ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBranchRepo) ListByCodes(codes []string) ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(codes))
	for _, c := range codes {
		if b, ok := r.branches[c]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) FindByIDs(ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error         { delete(r.products, id); return nil }

func (r *memProductRepo) List(q string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

type memStockRepo struct {
	rows map[string]*entity.Stock // llave: branch|product
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

func (r *memStockRepo) DeleteByProduct(productID string) error {
	for k, row := range r.rows {
		if row.ProductID == productID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *memStockRepo) ListByBranch(branchCode string) ([]repository.StockRow, error) {
	var out []repository.StockRow
	for _, row := range r.rows {
		if row.BranchCode == branchCode {
			out = append(out, repository.StockRow{ProductID: row.ProductID, OnHand: row.OnHand})
		}
	}
	return out, nil
}

type memMoveRepo struct {
	moves []*entity.StockMove
}

func (r *memMoveRepo) Create(m *entity.StockMove) error {
	cp := *m
	r.moves = append(r.moves, &cp)
	return nil
}

func (r *memMoveRepo) ListByRef(refID string) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	for _, m := range r.moves {
		if m.RefID == refID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMoveRepo) SumDeltas(branchCode, productID string) (int64, error) {
	var sum int64
	for _, m := range r.moves {
		if m.BranchCode == branchCode && m.ProductID == productID {
			sum += m.Delta
		}
	}
	return sum, nil
}

type memSaleRepo struct {
	sales []*entity.Sale
}

func (r *memSaleRepo) Create(s *entity.Sale) error {
	s.CreatedAt = time.Now()
	r.sales = append(r.sales, s)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memSaleRepo) ListRecent(branchCode string, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for i := len(r.sales) - 1; i >= 0 && len(out) < limit; i-- {
		if branchCode == "" || r.sales[i].BranchCode == branchCode {
			out = append(out, r.sales[i])
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListBetween(branchCode string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if (branchCode == "" || s.BranchCode == branchCode) &&
			!s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

// memSaleTx ejecuta la función transaccional sobre los fakes y, si falla,
// restaura el estado previo (mismo contrato de rollback que el motor real).
type memSaleTx struct {
	stock *memStockRepo
	moves *memMoveRepo
	sales *memSaleRepo
}

func (tx *memSaleTx) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	moveRepo repository.StockMoveRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snapshot := make(map[string]entity.Stock, len(tx.stock.rows))
	for k, row := range tx.stock.rows {
		snapshot[k] = *row
	}
	nMoves, nSales := len(tx.moves.moves), len(tx.sales.sales)

	if err := fn(tx.stock, tx.moves, tx.sales); err != nil {
		for k := range tx.stock.rows {
			prev := snapshot[k]
			tx.stock.rows[k] = &prev
		}
		tx.moves.moves = tx.moves.moves[:nMoves]
		tx.sales.sales = tx.sales.sales[:nSales]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de escenario
// ──────────────────────────────────────────────────────────────────────────────

type saleFixture struct {
	uc    *sales.CreateSaleUseCase
	stock *memStockRepo
	moves *memMoveRepo
	sales *memSaleRepo
}

func newSaleFixture(t *testing.T, onHand map[string]int64) *saleFixture {
	t.Helper()
	branches := &memBranchRepo{branches: map[string]*entity.Branch{
		"karachi-1": {Code: "karachi-1", Name: "Dukaan Karachi Saddar"},
	}}
	products := &memProductRepo{products: map[string]*entity.Product{}}
	stock := &memStockRepo{rows: map[string]*entity.Stock{}}
	for id, qty := range onHand {
		products.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id}
		stock.rows[stockKey("karachi-1", id)] = &entity.Stock{
			BranchCode: "karachi-1", ProductID: id, OnHand: qty,
		}
	}
	moves := &memMoveRepo{}
	saleRepo := &memSaleRepo{}
	tx := &memSaleTx{stock: stock, moves: moves, sales: saleRepo}
	return &saleFixture{
		uc:    sales.NewCreateSaleUseCase(branches, products, tx),
		stock: stock,
		moves: moves,
		sales: saleRepo,
	}
}

func price(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Venta simple: descuenta stock, registra un movimiento por línea y calcula
// los totales en el servidor (tax siempre 0).
func TestCreateSale_DescuentaStockYCalculaTotales(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})

	sale, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID:   "karachi-1",
		DiscountRs: price(50),
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Qty: 4, UnitPrice: price(100), Name: "nombre del cliente, se ignora"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, price(400).Equal(sale.Totals.Subtotal), "subtotal = 4 × 100")
	assert.True(t, price(50).Equal(sale.Totals.Discount))
	assert.True(t, decimal.Zero.Equal(sale.Totals.Tax), "tax siempre 0")
	assert.True(t, price(350).Equal(sale.Totals.Grand), "grand = subtotal - descuento")

	row, err := f.stock.Get("karachi-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), row.OnHand, "el stock debe quedar en 10 - 4")

	movs, err := f.moves.ListByRef(sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "exactamente un movimiento por línea")
	assert.Equal(t, int64(-4), movs[0].Delta)
	assert.Equal(t, entity.MoveReasonSale, movs[0].Reason)
	assert.Equal(t, "karachi-1", movs[0].BranchCode)

	require.Len(t, f.sales.sales, 1)
	assert.Equal(t, "Producto p1", sale.Items[0].Name,
		"el nombre persistido es el canónico del catálogo, no el del cliente")
}

// Si una línea excede lo disponible, NADA queda escrito: ni stock, ni
// movimientos, ni venta, aunque otras líneas sí alcanzaran.
func TestCreateSale_StockInsuficiente_RollbackTotal(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10, "p2": 3})

	_, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID: "karachi-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Qty: 2, UnitPrice: price(100)},
			{ProductID: "p2", Qty: 5, UnitPrice: price(200)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock), "debe envolver ErrOutOfStock")

	r1, _ := f.stock.Get("karachi-1", "p1")
	r2, _ := f.stock.Get("karachi-1", "p2")
	assert.Equal(t, int64(10), r1.OnHand, "p1 no debe descontarse")
	assert.Equal(t, int64(3), r2.OnHand, "p2 no debe descontarse")
	assert.Empty(t, f.moves.moves, "sin movimientos tras el rollback")
	assert.Empty(t, f.sales.sales, "sin venta tras el rollback")
}

// Dos líneas del mismo producto comparten la misma fila bloqueada: la
// disponibilidad se evalúa sobre el acumulado, no línea por línea.
func TestCreateSale_LineasRepetidasCompartenStock(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 5})

	_, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID: "karachi-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Qty: 3, UnitPrice: price(100)},
			{ProductID: "p1", Qty: 3, UnitPrice: price(100)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock), "3 + 3 > 5 debe fallar")

	row, _ := f.stock.Get("karachi-1", "p1")
	assert.Equal(t, int64(5), row.OnHand)
}

// Descuento mayor al subtotal: grand se fija en 0, nunca negativo.
func TestCreateSale_DescuentoMayorAlSubtotal_GrandCero(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})

	sale, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID:   "karachi-1",
		DiscountRs: price(500),
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Qty: 1, UnitPrice: price(100)},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(sale.Totals.Grand))
}

// La suma de deltas de la bitácora debe conciliar con el stock vigente
// después de varias ventas.
func TestCreateSale_BitacoraConciliaConStock(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})

	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
			BranchID: "karachi-1",
			Items:    []dto.SaleItemRequest{{ProductID: "p1", Qty: 2, UnitPrice: price(100)}},
		})
		require.NoError(t, err)
	}

	sum, err := f.moves.SumDeltas("karachi-1", "p1")
	require.NoError(t, err)
	row, _ := f.stock.Get("karachi-1", "p1")
	assert.Equal(t, int64(-6), sum)
	assert.Equal(t, int64(10)+sum, row.OnHand, "stock inicial + suma de deltas = vigente")
}

func TestCreateSale_ValidacionesDeEntrada(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin sucursal", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "p1", Qty: 1, UnitPrice: price(100)}},
		}},
		{"sin líneas", dto.CreateSaleRequest{BranchID: "karachi-1"}},
		{"descuento negativo", dto.CreateSaleRequest{
			BranchID:   "karachi-1",
			DiscountRs: price(-1),
			Items:      []dto.SaleItemRequest{{ProductID: "p1", Qty: 1, UnitPrice: price(100)}},
		}},
		{"cantidad cero", dto.CreateSaleRequest{
			BranchID: "karachi-1",
			Items:    []dto.SaleItemRequest{{ProductID: "p1", Qty: 0, UnitPrice: price(100)}},
		}},
		{"precio negativo", dto.CreateSaleRequest{
			BranchID: "karachi-1",
			Items:    []dto.SaleItemRequest{{ProductID: "p1", Qty: 1, UnitPrice: price(-5)}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateSale_SucursalInexistente(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})

	_, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID: "quetta-9",
		Items:    []dto.SaleItemRequest{{ProductID: "p1", Qty: 1, UnitPrice: price(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newSaleFixture(t, map[string]int64{"p1": 10})

	_, err := f.uc.Create(context.Background(), dto.CreateSaleRequest{
		BranchID: "karachi-1",
		Items:    []dto.SaleItemRequest{{ProductID: "fantasma", Qty: 1, UnitPrice: price(100)}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, f.moves.moves)
	assert.Empty(t, f.sales.sales)
}
