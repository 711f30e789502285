package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dukaanlabs/dukaan-api/internal/application/auth"
	"github.com/dukaanlabs/dukaan-api/internal/application/inventory"
	"github.com/dukaanlabs/dukaan-api/internal/application/reports"
	"github.com/dukaanlabs/dukaan-api/internal/application/sales"
	"github.com/dukaanlabs/dukaan-api/internal/application/usecase"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductUC      *usecase.ProductUseCase
	BranchUC       *usecase.BranchUseCase
	CreateSaleUC   *sales.CreateSaleUseCase
	SalesQueryUC   *sales.QueryUseCase
	AdjustStockUC  *inventory.AdjustStockUseCase
	StockQueryUC   *inventory.StockQueryUseCase
	LowStockUC     *reports.LowStockUseCase
	TransactionsUC *reports.TransactionsUseCase
	AnalyticsUC    *reports.AnalyticsUseCase
	ExpensesUC     *reports.ExpensesUseCase
	BranchRepo     repository.BranchRepository
	UserRepo       repository.UserRepository
	Receipts       *pdf.ReceiptGenerator
	JWTSecret      string
	Logger         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Ámbito de sucursal: valida branchId contra el ámbito del usuario
	branchScope := BranchScopeMiddleware(deps.UserRepo, deps.Logger)

	// Products (protegido; catálogo compartido entre sucursales)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Branches (protegido; administración solo admin)
	branches := api.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/with-managers", RequireAdmin(), branchHandler.ListWithManagers)
	branches.Post("/", RequireAdmin(), branchHandler.Create)
	branches.Patch("/:code/assign", RequireAdmin(), branchHandler.AssignManager)
	branches.Patch("/:code/unassign", RequireAdmin(), branchHandler.UnassignManager)

	// Sales (protegido, con ámbito de sucursal)
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.CreateSaleUC, deps.SalesQueryUC, deps.BranchRepo, deps.UserRepo, deps.Receipts)
	salesGroup.Post("/", branchScope, salesHandler.Create)
	salesGroup.Get("/recent", branchScope, salesHandler.Recent)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Stock (protegido, con ámbito de sucursal)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.AdjustStockUC, deps.StockQueryUC)
	stock.Get("/", branchScope, stockHandler.List)
	stock.Post("/adjust", branchScope, stockHandler.Adjust)
	stock.Patch("/adjust", branchScope, stockHandler.Adjust)

	// Reports (protegido)
	reportsGroup := api.Group("/reports")
	reportsHandler := NewReportsHandler(deps.LowStockUC, deps.TransactionsUC, deps.AnalyticsUC, deps.ExpensesUC)
	reportsGroup.Get("/low-stock", branchScope, reportsHandler.LowStock)
	reportsGroup.Get("/daily", branchScope, reportsHandler.Daily)
	reportsGroup.Get("/range", branchScope, reportsHandler.Range)
	reportsGroup.Get("/analytics", branchScope, reportsHandler.Analytics)
	reportsGroup.Get("/overview", RequireElevated(), reportsHandler.Overview)
	reportsGroup.Post("/expenses", branchScope, reportsHandler.AddExpense)
	reportsGroup.Get("/expenses", branchScope, reportsHandler.ListExpenses)
	reportsGroup.Get("/expenses/summary", branchScope, reportsHandler.ExpenseSummary)
	reportsGroup.Get("/expenses/by-user", branchScope, reportsHandler.ExpensesByUser)
	reportsGroup.Get("/expenses/by-branch", RequireElevated(), reportsHandler.ExpensesByBranch)
	reportsGroup.Post("/investments", branchScope, reportsHandler.AddInvestment)
	reportsGroup.Get("/investments", branchScope, reportsHandler.ListInvestments)
}
