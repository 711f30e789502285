package reports

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

// ExpensesUseCase registro y consulta de gastos e inversiones.
type ExpensesUseCase struct {
	expenseRepo    repository.ExpenseRepository
	investmentRepo repository.InvestmentRepository
	branchRepo     repository.BranchRepository
	userRepo       repository.UserRepository
	cache          ReportCache
}

// NewExpensesUseCase construye el caso de uso.
func NewExpensesUseCase(
	expenseRepo repository.ExpenseRepository,
	investmentRepo repository.InvestmentRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	cache ReportCache,
) *ExpensesUseCase {
	return &ExpensesUseCase{
		expenseRepo:    expenseRepo,
		investmentRepo: investmentRepo,
		branchRepo:     branchRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

// AddExpense registra un gasto contra la sucursal. La atribución decide el
// "kind": gastos de empleado (creador o designado) versus gastos de sucursal.
func (uc *ExpensesUseCase) AddExpense(ctx context.Context, creatorID string, in dto.AddExpenseRequest) (*entity.Expense, error) {
	if in.BranchID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.branchRepo.GetByCode(in.BranchID); err != nil {
		return nil, err
	}

	creator, err := uc.userRepo.FindByID(creatorID)
	if err != nil {
		return nil, err
	}

	kind := strings.TrimSpace(in.Kind)
	if kind == "" {
		if in.AttributeToEmployee || in.ExpenseUserID != "" {
			kind = entity.ExpenseKindUser
		} else {
			kind = entity.ExpenseKindBranch
		}
	}
	if kind != entity.ExpenseKindUser && kind != entity.ExpenseKindBranch {
		return nil, domain.ErrInvalidInput
	}

	expenseUserID := ""
	if kind == entity.ExpenseKindUser {
		expenseUserID = in.ExpenseUserID
		if expenseUserID == "" {
			expenseUserID = creator.ID
		} else if _, err := uc.userRepo.FindByID(expenseUserID); err != nil {
			return nil, err
		}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}

	expense := &entity.Expense{
		ID:             uuid.New().String(),
		BranchCode:     in.BranchID,
		Amount:         in.Amount,
		Category:       category,
		Subcategory:    strings.TrimSpace(in.Subcategory),
		Kind:           kind,
		ExpenseUserID:  expenseUserID,
		Note:           strings.TrimSpace(in.Note),
		CreatedBy:      creator.ID,
		CreatedByName:  creator.Name,
		CreatedByEmail: creator.Email,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, "reports:")
	return expense, nil
}

// ListExpenses lista gastos de una sucursal (vacío = todas) en un rango
// opcional, con el total acumulado.
func (uc *ExpensesUseCase) ListExpenses(ctx context.Context, branchCode string, from, to *time.Time) (*dto.ExpenseListResponse, error) {
	items, err := uc.expenseRepo.ListBetween(branchCode, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.ExpenseListResponse{Total: decimal.Zero, Items: make([]dto.ExpenseDTO, 0, len(items))}
	for _, e := range items {
		resp.Total = resp.Total.Add(e.Amount)
		resp.Items = append(resp.Items, dto.ExpenseDTO{
			ID:             e.ID,
			BranchID:       e.BranchCode,
			Amount:         e.Amount,
			Category:       e.Category,
			Subcategory:    e.Subcategory,
			Kind:           e.Kind,
			ExpenseUserID:  e.ExpenseUserID,
			Note:           e.Note,
			CreatedBy:      e.CreatedBy,
			CreatedByName:  e.CreatedByName,
			CreatedByEmail: e.CreatedByEmail,
			CreatedAt:      e.CreatedAt,
		})
	}
	return resp, nil
}

// ExpenseSummary resumen de gastos por categoría.
func (uc *ExpensesUseCase) ExpenseSummary(ctx context.Context, branchCode string, from, to *time.Time) ([]dto.CategoryTotalDTO, error) {
	rows, err := uc.expenseRepo.SummaryByCategory(branchCode, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryTotalDTO{Category: r.Category, Total: r.Total, Count: r.Count})
	}
	return out, nil
}

// ExpensesByUser totales de gastos atribuidos por usuario.
func (uc *ExpensesUseCase) ExpensesByUser(ctx context.Context, branchCode string, from, to *time.Time) ([]dto.UserExpenseTotalDTO, error) {
	rows, err := uc.expenseRepo.TotalsByUser(branchCode, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserExpenseTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UserExpenseTotalDTO{
			UserID: r.UserID,
			Name:   r.Name,
			Email:  r.Email,
			Total:  r.Total,
			Count:  r.Count,
		})
	}
	return out, nil
}

// ExpensesByBranch totales de gastos por sucursal (solo elevados).
func (uc *ExpensesUseCase) ExpensesByBranch(ctx context.Context, from, to *time.Time) ([]dto.BranchExpenseTotalDTO, error) {
	rows, err := uc.expenseRepo.TotalsByBranch(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchExpenseTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BranchExpenseTotalDTO{BranchID: r.BranchCode, Total: r.Total, Count: r.Count})
	}
	return out, nil
}

// AddInvestment registra una inversión de capital contra la sucursal.
func (uc *ExpensesUseCase) AddInvestment(ctx context.Context, in dto.AddInvestmentRequest) (*entity.Investment, error) {
	if in.BranchID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.branchRepo.GetByCode(in.BranchID); err != nil {
		return nil, err
	}
	inv := &entity.Investment{
		ID:         uuid.New().String(),
		BranchCode: in.BranchID,
		Amount:     in.Amount,
		Note:       strings.TrimSpace(in.Note),
	}
	if err := uc.investmentRepo.Create(inv); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, "reports:")
	return inv, nil
}

// ListInvestments lista inversiones con el total acumulado.
func (uc *ExpensesUseCase) ListInvestments(ctx context.Context, branchCode string, from, to *time.Time) (*dto.InvestmentListResponse, error) {
	items, err := uc.investmentRepo.ListBetween(branchCode, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvestmentListResponse{Total: decimal.Zero, Items: make([]dto.InvestmentDTO, 0, len(items))}
	for _, inv := range items {
		resp.Total = resp.Total.Add(inv.Amount)
		resp.Items = append(resp.Items, dto.InvestmentDTO{
			ID:        inv.ID,
			BranchID:  inv.BranchCode,
			Amount:    inv.Amount,
			Note:      inv.Note,
			CreatedAt: inv.CreatedAt,
		})
	}
	return resp, nil
}
