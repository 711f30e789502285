package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dukaanlabs/dukaan-api/internal/application/auth"
	"github.com/dukaanlabs/dukaan-api/internal/application/inventory"
	appreports "github.com/dukaanlabs/dukaan-api/internal/application/reports"
	"github.com/dukaanlabs/dukaan-api/internal/application/sales"
	"github.com/dukaanlabs/dukaan-api/internal/application/usecase"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/cache"
	infrapdf "github.com/dukaanlabs/dukaan-api/internal/infrastructure/pdf"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/postgres"
	httpRouter "github.com/dukaanlabs/dukaan-api/internal/interfaces/http"
	"github.com/dukaanlabs/dukaan-api/pkg/config"
	"github.com/dukaanlabs/dukaan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	investmentRepo := postgres.NewInvestmentRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes: Redis si está configurado, si no el cache nulo.
	var reportCache appreports.ReportCache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log.Zerolog())
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; reportes sin cache")
		} else {
			defer redisCache.Close()
			reportCache = redisCache
		}
	}

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	productUC := usecase.NewProductUseCase(productRepo, branchRepo, stockRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo, userRepo)
	createSaleUC := sales.NewCreateSaleUseCase(branchRepo, productRepo, txRunner)
	salesQueryUC := sales.NewQueryUseCase(saleRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner)
	stockQueryUC := inventory.NewStockQueryUseCase(stockRepo)
	lowStockUC := appreports.NewLowStockUseCase(reportsRepo)
	transactionsUC := appreports.NewTransactionsUseCase(reportsRepo, saleRepo, expenseRepo)
	analyticsUC := appreports.NewAnalyticsUseCase(reportsRepo, reportCache, log.Zerolog())
	expensesUC := appreports.NewExpensesUseCase(expenseRepo, investmentRepo, branchRepo, userRepo, reportCache)

	receipts := infrapdf.NewReceiptGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dukaan API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		BranchUC:       branchUC,
		CreateSaleUC:   createSaleUC,
		SalesQueryUC:   salesQueryUC,
		AdjustStockUC:  adjustStockUC,
		StockQueryUC:   stockQueryUC,
		LowStockUC:     lowStockUC,
		TransactionsUC: transactionsUC,
		AnalyticsUC:    analyticsUC,
		ExpensesUC:     expensesUC,
		BranchRepo:     branchRepo,
		UserRepo:       userRepo,
		Receipts:       receipts,
		JWTSecret:      cfg.JWT.Secret,
		Logger:         log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
