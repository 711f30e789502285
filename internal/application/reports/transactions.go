package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// TransactionsUseCase reportes de transacciones combinadas (ventas + gastos)
// por día y por rango de fechas.
type TransactionsUseCase struct {
	reportsRepo repository.ReportsRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

// NewTransactionsUseCase construye el caso de uso.
func NewTransactionsUseCase(
	reportsRepo repository.ReportsRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
) *TransactionsUseCase {
	return &TransactionsUseCase{
		reportsRepo: reportsRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
	}
}

// Daily devuelve las transacciones de un día con totales. branchCode vacío
// agrega todas las sucursales; date en formato YYYY-MM-DD (vacío = hoy).
func (uc *TransactionsUseCase) Daily(ctx context.Context, branchCode, date string) (*dto.DailyTransactionsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	from := day
	to := day.AddDate(0, 0, 1)

	rows, totals, err := uc.collect(ctx, branchCode, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.DailyTransactionsResponse{
		BranchID: branchLabel(branchCode),
		Date:     day.Format(dateLayout),
		Totals:   totals,
		Rows:     rows,
	}, nil
}

// Range devuelve las transacciones de un rango [from, to] agrupadas por día,
// con totales por día y totales globales.
func (uc *TransactionsUseCase) Range(ctx context.Context, branchCode, fromStr, toStr string) (*dto.RangeTransactionsResponse, error) {
	if fromStr == "" || toStr == "" {
		return nil, domain.ErrInvalidInput
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, err
	}
	toDay, err := parseDate(toStr)
	if err != nil {
		return nil, err
	}
	if toDay.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	to := toDay.AddDate(0, 0, 1)

	rows, overall, err := uc.collect(ctx, branchCode, from, to)
	if err != nil {
		return nil, err
	}

	// Agrupa por día calendario conservando el orden cronológico.
	groups := make(map[string][]dto.TransactionRowDTO)
	for _, r := range rows {
		key := r.CreatedAt.Format(dateLayout)
		groups[key] = append(groups[key], r)
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]dto.DayGroupDTO, 0, len(dates))
	for _, d := range dates {
		days = append(days, dto.DayGroupDTO{
			Date:   d,
			Totals: totalsOf(groups[d]),
			Rows:   groups[d],
		})
	}

	return &dto.RangeTransactionsResponse{
		BranchID: branchLabel(branchCode),
		From:     from.Format(dateLayout),
		To:       toDay.Format(dateLayout),
		Overall:  overall,
		Days:     days,
	}, nil
}

// collect reúne líneas de venta y gastos del rango y calcula totales. El
// descuento de ventas sale de las cabeceras, no de las líneas.
func (uc *TransactionsUseCase) collect(ctx context.Context, branchCode string, from, to time.Time) ([]dto.TransactionRowDTO, dto.DayTotalsDTO, error) {
	var zero dto.DayTotalsDTO

	lines, err := uc.reportsRepo.SaleLines(ctx, branchCode, from, to)
	if err != nil {
		return nil, zero, err
	}
	sales, err := uc.saleRepo.ListBetween(branchCode, from, to)
	if err != nil {
		return nil, zero, err
	}
	expenses, err := uc.expenseRepo.ListBetween(branchCode, &from, &to)
	if err != nil {
		return nil, zero, err
	}

	rows := make([]dto.TransactionRowDTO, 0, len(lines)+len(expenses))
	for _, l := range lines {
		rows = append(rows, dto.TransactionRowDTO{
			Type:        "sale",
			CreatedAt:   l.CreatedAt,
			SaleID:      l.SaleID,
			ProductID:   l.ProductID,
			SKU:         l.SKU,
			Name:        l.Name,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.UnitPrice.Mul(decimal.NewFromInt(l.Qty)),
			RetailPrice: l.RetailPrice,
		})
	}
	for _, e := range expenses {
		rows = append(rows, dto.TransactionRowDTO{
			Type:           "expense",
			CreatedAt:      e.CreatedAt,
			ExpenseID:      e.ID,
			Kind:           e.Kind,
			Category:       e.Category,
			Subcategory:    e.Subcategory,
			Amount:         e.Amount,
			CreatedByName:  e.CreatedByName,
			CreatedByEmail: e.CreatedByEmail,
			Note:           e.Note,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })

	totals := dto.DayTotalsDTO{
		SalesSubtotal: decimal.Zero,
		SalesDiscount: decimal.Zero,
		SalesNet:      decimal.Zero,
		ExpensesTotal: decimal.Zero,
		Net:           decimal.Zero,
	}
	for _, s := range sales {
		totals.SalesSubtotal = totals.SalesSubtotal.Add(s.Totals.Subtotal)
		totals.SalesDiscount = totals.SalesDiscount.Add(s.Totals.Discount)
		totals.SalesNet = totals.SalesNet.Add(s.Totals.Grand)
	}
	for _, e := range expenses {
		totals.ExpensesTotal = totals.ExpensesTotal.Add(e.Amount)
	}
	totals.Net = totals.SalesNet.Sub(totals.ExpensesTotal)
	return rows, totals, nil
}

// totalsOf recalcula los totales de un subconjunto de filas. El descuento por
// día no es recuperable desde líneas sueltas, así que el neto diario usa el
// subtotal de líneas menos gastos.
func totalsOf(rows []dto.TransactionRowDTO) dto.DayTotalsDTO {
	t := dto.DayTotalsDTO{
		SalesSubtotal: decimal.Zero,
		SalesDiscount: decimal.Zero,
		SalesNet:      decimal.Zero,
		ExpensesTotal: decimal.Zero,
		Net:           decimal.Zero,
	}
	for _, r := range rows {
		switch r.Type {
		case "sale":
			t.SalesSubtotal = t.SalesSubtotal.Add(r.LineTotal)
		case "expense":
			t.ExpensesTotal = t.ExpensesTotal.Add(r.Amount)
		}
	}
	t.SalesNet = t.SalesSubtotal.Sub(t.SalesDiscount)
	t.Net = t.SalesNet.Sub(t.ExpensesTotal)
	return t
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// branchLabel es la etiqueta serializada del ámbito consultado.
func branchLabel(branchCode string) string {
	if branchCode == "" {
		return entity.AggregateAllBranches
	}
	return branchCode
}
