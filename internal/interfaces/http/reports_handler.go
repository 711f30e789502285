package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/reports"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
)

// ReportsHandler maneja reportes: bajo stock, transacciones, analítica,
// gastos e inversiones.
type ReportsHandler struct {
	lowStockUC     *reports.LowStockUseCase
	transactionsUC *reports.TransactionsUseCase
	analyticsUC    *reports.AnalyticsUseCase
	expensesUC     *reports.ExpensesUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(
	lowStockUC *reports.LowStockUseCase,
	transactionsUC *reports.TransactionsUseCase,
	analyticsUC *reports.AnalyticsUseCase,
	expensesUC *reports.ExpensesUseCase,
) *ReportsHandler {
	return &ReportsHandler{
		lowStockUC:     lowStockUC,
		transactionsUC: transactionsUC,
		analyticsUC:    analyticsUC,
		expensesUC:     expensesUC,
	}
}

// LowStock godoc
// @Summary      Productos bajo el umbral de reposición
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal"
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportsHandler) LowStock(c *fiber.Ctx) error {
	target := GetBranchTarget(c)
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branchId debe ser una sucursal concreta"})
	}
	out, err := h.lowStockUC.List(c.Context(), target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Transacciones de un día (ventas + gastos) con totales
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Param        date      query  string  false  "YYYY-MM-DD (default hoy)"
// @Success      200  {object}  dto.DailyTransactionsResponse
// @Router       /api/reports/daily [get]
func (h *ReportsHandler) Daily(c *fiber.Ctx) error {
	out, err := h.transactionsUC.Daily(c.Context(), GetBranchTarget(c), c.Query("date"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Range godoc
// @Summary      Transacciones por rango de fechas, agrupadas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Param        from      query  string  true  "YYYY-MM-DD"
// @Param        to        query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.RangeTransactionsResponse
// @Router       /api/reports/range [get]
func (h *ReportsHandler) Range(c *fiber.Ctx) error {
	out, err := h.transactionsUC.Range(c.Context(), GetBranchTarget(c), c.Query("from"), c.Query("to"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to son requeridos en formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Analytics godoc
// @Summary      Tablero de una sucursal (hoy, 7 días, top productos, bajo stock)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal"
// @Success      200  {object}  dto.AnalyticsResponse
// @Router       /api/reports/analytics [get]
func (h *ReportsHandler) Analytics(c *fiber.Ctx) error {
	target := GetBranchTarget(c)
	if target == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branchId debe ser una sucursal concreta"})
	}
	out, err := h.analyticsUC.Analytics(c.Context(), target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Tablero global por sucursal (solo admin u owner)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewResponse
// @Router       /api/reports/overview [get]
func (h *ReportsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.analyticsUC.Overview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Registrar un gasto
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddExpenseRequest  true  "branchId, amount, category, kind"
// @Success      201   {object}  dto.ExpenseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/expenses [post]
func (h *ReportsHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.AddExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.BranchID = GetBranchTarget(c)
	out, err := h.expensesUC.AddExpense(c.Context(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal o usuario no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branchId y amount > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExpenseDTO{
		ID:             out.ID,
		BranchID:       out.BranchCode,
		Amount:         out.Amount,
		Category:       out.Category,
		Subcategory:    out.Subcategory,
		Kind:           out.Kind,
		ExpenseUserID:  out.ExpenseUserID,
		Note:           out.Note,
		CreatedBy:      out.CreatedBy,
		CreatedByName:  out.CreatedByName,
		CreatedByEmail: out.CreatedByEmail,
		CreatedAt:      out.CreatedAt,
	})
}

// ListExpenses godoc
// @Summary      Listar gastos con total acumulado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/reports/expenses [get]
func (h *ReportsHandler) ListExpenses(c *fiber.Ctx) error {
	from, to, err := rangeBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.expensesUC.ListExpenses(c.Context(), GetBranchTarget(c), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExpenseSummary godoc
// @Summary      Gastos agrupados por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Success      200  {array}  dto.CategoryTotalDTO
// @Router       /api/reports/expenses/summary [get]
func (h *ReportsHandler) ExpenseSummary(c *fiber.Ctx) error {
	from, to, err := rangeBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.expensesUC.ExpenseSummary(c.Context(), GetBranchTarget(c), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExpensesByUser godoc
// @Summary      Gastos atribuidos por empleado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Success      200  {array}  dto.UserExpenseTotalDTO
// @Router       /api/reports/expenses/by-user [get]
func (h *ReportsHandler) ExpensesByUser(c *fiber.Ctx) error {
	from, to, err := rangeBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.expensesUC.ExpensesByUser(c.Context(), GetBranchTarget(c), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExpensesByBranch godoc
// @Summary      Gastos agregados por sucursal (solo admin u owner)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchExpenseTotalDTO
// @Router       /api/reports/expenses/by-branch [get]
func (h *ReportsHandler) ExpensesByBranch(c *fiber.Ctx) error {
	from, to, err := rangeBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.expensesUC.ExpensesByBranch(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddInvestment godoc
// @Summary      Registrar una inversión de capital
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddInvestmentRequest  true  "branchId, amount, note"
// @Success      201   {object}  dto.InvestmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/investments [post]
func (h *ReportsHandler) AddInvestment(c *fiber.Ctx) error {
	var in dto.AddInvestmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.BranchID = GetBranchTarget(c)
	out, err := h.expensesUC.AddInvestment(c.Context(), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sucursal no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branchId y amount > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvestmentDTO{
		ID:        out.ID,
		BranchID:  out.BranchCode,
		Amount:    out.Amount,
		Note:      out.Note,
		CreatedAt: out.CreatedAt,
	})
}

// ListInvestments godoc
// @Summary      Listar inversiones con total acumulado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branchId  query  string  true  "Código de sucursal o all"
// @Success      200  {object}  dto.InvestmentListResponse
// @Router       /api/reports/investments [get]
func (h *ReportsHandler) ListInvestments(c *fiber.Ctx) error {
	from, to, err := rangeBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.expensesUC.ListInvestments(c.Context(), GetBranchTarget(c), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// rangeBounds parsea from/to opcionales de la query. `to` es exclusivo: se
// corre al día siguiente para cubrir el día completo.
func rangeBounds(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, err
		}
		next := t.AddDate(0, 0, 1)
		to = &next
	}
	return from, to, nil
}
