// Comando seed: carga sucursales y el catálogo inicial de Tokyo Flavors
// (10 sabores × 3 concentraciones, frascos de 30 ml) y respalda las filas de
// stock faltantes para cualquier producto ya existente. Es idempotente: lo
// que ya existe no se toca, salvo filas del catálogo por debajo del objetivo
// inicial, que se suben hasta él.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
	"github.com/dukaanlabs/dukaan-api/internal/infrastructure/postgres"
	"github.com/dukaanlabs/dukaan-api/pkg/config"
	"github.com/dukaanlabs/dukaan-api/pkg/logger"
)

// initialBottles frascos por producto y sucursal al sembrar el catálogo.
// El stock se lleva en unidades base, así que el objetivo por fila es
// initialBottles × UnitSize (frascos de 30 ml → 300 unidades).
const initialBottles = 10

var seedBranches = []entity.Branch{
	{Code: "karachi-1", Name: "Dukaan Karachi Saddar", Address: "Saddar, Karachi"},
	{Code: "lahore-1", Name: "Dukaan Lahore Liberty", Address: "Liberty Market, Lahore"},
}

var flavors = []string{
	"Mango Tango", "Icy Mint", "Vanilla Custard", "Blue Razz", "Strawberry Milk",
	"Grape Soda", "Lemon Tart", "Peach Ice", "Tobacco Gold", "Watermelon Chill",
}

var strengths = []int{3, 6, 12} // mg/ml

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)

	// Sucursales
	for i := range seedBranches {
		b := seedBranches[i]
		if err := branchRepo.Create(&b); err != nil {
			if err == domain.ErrDuplicate {
				log.Info().Str("branch", b.Code).Msg("sucursal ya existe")
				continue
			}
			log.Fatal().Err(err).Str("branch", b.Code).Msg("crear sucursal")
		}
		log.Info().Str("branch", b.Code).Msg("sucursal creada")
	}

	branches, err := branchRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("listar sucursales")
	}
	codes := make([]string, 0, len(branches))
	for _, b := range branches {
		codes = append(codes, b.Code)
	}

	created, raised, err := seedCatalog(productRepo, stockRepo, codes)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogo")
	}
	log.Info().Int("created", created).Int("raised", raised).Msg("catálogo sembrado")

	backfilled, err := backfillStock(productRepo, stockRepo, codes)
	if err != nil {
		log.Fatal().Err(err).Msg("backfill stock")
	}
	log.Info().Int("products", backfilled).Int("branches", len(codes)).Msg("backfill de stock completado")
}

// seedCatalog crea los productos Tokyo Flavors que falten y lleva cada fila
// de stock del catálogo al objetivo inicial: las filas faltantes se crean con
// él y las existentes por debajo se suben hasta él. Nunca baja una fila.
func seedCatalog(productRepo repository.ProductRepository, stockRepo repository.StockRepository, codes []string) (created, raised int, err error) {
	for _, flavor := range flavors {
		for _, mg := range strengths {
			sku := skuFor(flavor, mg)
			p, err := productRepo.GetBySKU(sku)
			if err == domain.ErrNotFound {
				p = &entity.Product{
					ID:       uuid.New().String(),
					SKU:      sku,
					Name:     fmt.Sprintf("%s %dmg 30ml", flavor, mg),
					Brand:    "Tokyo Flavors",
					Category: "e-liquid",
					Unit:     entity.UnitMl,
					UnitSize: 30,
					Price:    decimal.NewFromInt(1500),
				}
				if err := productRepo.Create(p); err != nil {
					return created, raised, fmt.Errorf("crear producto %s: %w", sku, err)
				}
				created++
			} else if err != nil {
				return created, raised, fmt.Errorf("buscar producto %s: %w", sku, err)
			}

			target := initialBottles * p.UnitSize
			if err := stockRepo.Provision(p.ID, codes, target); err != nil {
				return created, raised, fmt.Errorf("aprovisionar stock %s: %w", sku, err)
			}
			for _, code := range codes {
				st, err := stockRepo.Get(code, p.ID)
				if err != nil {
					return created, raised, fmt.Errorf("leer stock %s en %s: %w", sku, code, err)
				}
				if st.OnHand < target {
					if err := stockRepo.UpdateOnHand(code, p.ID, target); err != nil {
						return created, raised, fmt.Errorf("subir stock %s en %s: %w", sku, code, err)
					}
					raised++
				}
			}
		}
	}
	return created, raised, nil
}

// backfillStock crea la fila de stock faltante (en cero) para cualquier
// producto existente sin fila en alguna sucursal. Las existentes no se tocan.
func backfillStock(productRepo repository.ProductRepository, stockRepo repository.StockRepository, codes []string) (int, error) {
	products, err := productRepo.List("")
	if err != nil {
		return 0, fmt.Errorf("listar productos: %w", err)
	}
	for _, p := range products {
		if err := stockRepo.Provision(p.ID, codes, 0); err != nil {
			return 0, fmt.Errorf("backfill stock %s: %w", p.SKU, err)
		}
	}
	return len(products), nil
}

// skuFor arma el SKU estable: TF-MANGO-TANGO-3
func skuFor(flavor string, mg int) string {
	slug := strings.ToUpper(strings.ReplaceAll(flavor, " ", "-"))
	return fmt.Sprintf("TF-%s-%d", slug, mg)
}
