package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaanlabs/dukaan-api/internal/application/sales"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/pdf"
	apphttp "github.com/dukaanlabs/dukaan-api/internal/interfaces/http"
)

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { r.sales[s.ID] = s; return nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeSaleRepo) ListRecent(branchCode string, limit int) ([]*entity.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) ListBetween(branchCode string, from, to time.Time) ([]*entity.Sale, error) {
	return nil, nil
}

func lahoreSale() *entity.Sale {
	return &entity.Sale{
		ID:         "s1",
		BranchCode: "lahore-1",
		Items: []entity.SaleItem{
			{ProductID: "p1", Name: "Mango Tango 3mg 30ml", Qty: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
		Totals: entity.SaleTotals{
			Subtotal: decimal.NewFromInt(3000),
			Discount: decimal.Zero,
			Tax:      decimal.Zero,
			Grand:    decimal.NewFromInt(3000),
		},
		CreatedAt: time.Now(),
	}
}

// buildReceiptApp arma la ruta del recibo con el ámbito vigente en userRepo.
func buildReceiptApp(userRepo *fakeUserRepo) *fiber.App {
	branches := &dupBranchRepo{byCode: map[string]*entity.Branch{
		"lahore-1": {Code: "lahore-1", Name: "Dukaan Lahore Liberty"},
	}}
	saleRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{"s1": lahoreSale()}}
	handler := apphttp.NewSalesHandler(nil, sales.NewQueryUseCase(saleRepo), branches, userRepo, pdf.NewReceiptGenerator())

	app := fiber.New()
	app.Get("/api/sales/:id/receipt", apphttp.AuthMiddleware(testJWTSecret), handler.Receipt)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests recibo
// ──────────────────────────────────────────────────────────────────────────────

// El manager de la sucursal descarga el recibo en PDF.
func TestSalesReceipt_ManagerDeLaSucursal(t *testing.T) {
	app := buildReceiptApp(managerRepo(entity.OneBranch("lahore-1")))
	resp := doGet(t, app, "/api/sales/s1/receipt", tokenFor(t, "manager", "lahore-1"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

// El ámbito vigente sale de la DB, no del token: un manager reasignado a otra
// sucursal pierde el acceso a los recibos de la anterior aunque su token aún
// la mencione.
func TestSalesReceipt_ManagerReasignadoPierdeAcceso(t *testing.T) {
	app := buildReceiptApp(managerRepo(entity.OneBranch("karachi-1"))) // DB ya dice karachi-1
	resp := doGet(t, app, "/api/sales/s1/receipt", tokenFor(t, "manager", "lahore-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Si la DB no responde se cae a los claims del token, igual que el middleware
// de ámbito.
func TestSalesReceipt_FallbackAClaimsSiDBFalla(t *testing.T) {
	app := buildReceiptApp(&fakeUserRepo{users: map[string]*entity.User{}})
	resp := doGet(t, app, "/api/sales/s1/receipt", tokenFor(t, "manager", "lahore-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Admin accede al recibo de cualquier sucursal.
func TestSalesReceipt_AdminCualquierSucursal(t *testing.T) {
	app := buildReceiptApp(&fakeUserRepo{users: map[string]*entity.User{}})
	resp := doGet(t, app, "/api/sales/s1/receipt", tokenFor(t, "admin", "*"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Venta inexistente → 404.
func TestSalesReceipt_VentaInexistente(t *testing.T) {
	app := buildReceiptApp(managerRepo(entity.OneBranch("lahore-1")))
	resp := doGet(t, app, "/api/sales/s0/receipt", tokenFor(t, "manager", "lahore-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
