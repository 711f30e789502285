package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// Parámetros de los tableros.
const (
	LowStockThreshold = 5
	TopProductsLimit  = 5
	cacheTTL          = 60 * time.Second
)

// AnalyticsUseCase tableros agregados: analítica por sucursal y vista global.
// Los resultados se cachean brevemente; la fuente de verdad sigue siendo la DB.
type AnalyticsUseCase struct {
	reportsRepo repository.ReportsRepository
	cache       ReportCache
	logger      zerolog.Logger
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(reportsRepo repository.ReportsRepository, cache ReportCache, logger zerolog.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{reportsRepo: reportsRepo, cache: cache, logger: logger}
}

// Analytics arma el tablero de una sucursal: hoy, últimos 7 días con finanzas,
// top de productos y conteo de bajo stock.
func (uc *AnalyticsUseCase) Analytics(ctx context.Context, branchCode string) (*dto.AnalyticsResponse, error) {
	key := "reports:analytics:" + branchCode
	if raw, ok := uc.cache.Get(ctx, key); ok {
		var cached dto.AnalyticsResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	today, err := uc.reportsRepo.SalesStatsSince(ctx, branchCode, startOfDay)
	if err != nil {
		return nil, err
	}
	week, err := uc.reportsRepo.SalesStatsSince(ctx, branchCode, weekAgo)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.reportsRepo.ExpensesTotalSince(ctx, branchCode, weekAgo)
	if err != nil {
		return nil, err
	}
	investments, err := uc.reportsRepo.InvestmentsTotalSince(ctx, branchCode, weekAgo)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportsRepo.TopProductsSince(ctx, branchCode, weekAgo, TopProductsLimit)
	if err != nil {
		return nil, err
	}
	lowCount, err := uc.reportsRepo.LowStockCount(ctx, branchCode, LowStockThreshold)
	if err != nil {
		return nil, err
	}

	profit := week.Revenue.Sub(expenses)
	var roi *decimal.Decimal
	if investments.IsPositive() {
		// ROI en porcentaje sobre lo invertido en la ventana.
		r := profit.Div(investments).Mul(decimal.NewFromInt(100)).Round(2)
		roi = &r
	}

	topDTO := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		topDTO = append(topDTO, dto.TopProductDTO{
			ProductID: t.ProductID,
			SKU:       t.SKU,
			Name:      t.Name,
			Qty:       t.Qty,
		})
	}

	resp := &dto.AnalyticsResponse{
		BranchID: branchCode,
		Today:    dto.PeriodStatsDTO{Qty: today.Qty, Revenue: today.Revenue},
		Last7d: dto.WeekStatsDTO{
			Qty:         week.Qty,
			Revenue:     week.Revenue,
			Expenses:    expenses,
			Investments: investments,
			Profit:      profit,
			ROI:         roi,
		},
		TopProducts:   topDTO,
		LowStockCount: lowCount,
	}

	if raw, err := json.Marshal(resp); err == nil {
		uc.cache.Set(ctx, key, raw, cacheTTL)
	} else {
		uc.logger.Warn().Err(err).Str("branch", branchCode).Msg("no se pudo cachear analítica")
	}
	return resp, nil
}

// Overview arma el tablero global: agregados de hoy y de 7 días por sucursal.
// Solo roles elevados llegan aquí.
func (uc *AnalyticsUseCase) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	const key = "reports:overview"
	if raw, ok := uc.cache.Get(ctx, key); ok {
		var cached dto.OverviewResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	todayRows, err := uc.reportsRepo.SalesByBranchSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	weekRows, err := uc.reportsRepo.SalesByBranchSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	resp := &dto.OverviewResponse{
		Today:  make(map[string]dto.PeriodStatsDTO, len(todayRows)),
		Last7d: make(map[string]dto.PeriodStatsDTO, len(weekRows)),
	}
	for _, r := range todayRows {
		resp.Today[r.BranchCode] = dto.PeriodStatsDTO{Qty: r.Qty, Revenue: r.Revenue}
	}
	for _, r := range weekRows {
		resp.Last7d[r.BranchCode] = dto.PeriodStatsDTO{Qty: r.Qty, Revenue: r.Revenue}
	}

	if raw, err := json.Marshal(resp); err == nil {
		uc.cache.Set(ctx, key, raw, cacheTTL)
	}
	return resp, nil
}
