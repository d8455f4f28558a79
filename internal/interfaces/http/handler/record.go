package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/organizer/backend/internal/application/finance"
)

// RecordHandler handles expense, income, investment and category endpoints
type RecordHandler struct {
	BaseHandler
	recordService *financeapp.RecordService
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService *financeapp.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func (h *RecordHandler) listMeta(filter financeapp.RecordListFilter) (int, int) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// CreateExpense creates a new expense
func (h *RecordHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.recordService.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetExpense retrieves an expense by ID
func (h *RecordHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.recordService.GetExpenseByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// UpdateExpense updates an expense
func (h *RecordHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req financeapp.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.recordService.UpdateExpense(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// DeleteExpense deletes an expense
func (h *RecordHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.recordService.DeleteExpense(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListExpenses lists expenses with optional filters and pagination
func (h *RecordHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, total, err := h.recordService.ListExpenses(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, expenses, total, page, pageSize)
}

// CreateIncome creates a new income
func (h *RecordHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	income, err := h.recordService.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, income)
}

// GetIncome retrieves an income by ID
func (h *RecordHandler) GetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	income, err := h.recordService.GetIncomeByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, income)
}

// UpdateIncome updates an income
func (h *RecordHandler) UpdateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	var req financeapp.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	income, err := h.recordService.UpdateIncome(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, income)
}

// DeleteIncome deletes an income
func (h *RecordHandler) DeleteIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	if err := h.recordService.DeleteIncome(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListIncomes lists incomes with optional filters and pagination
func (h *RecordHandler) ListIncomes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	incomes, total, err := h.recordService.ListIncomes(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, incomes, total, page, pageSize)
}

// CreateInvestment creates a new investment
func (h *RecordHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investment, err := h.recordService.CreateInvestment(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, investment)
}

// GetInvestment retrieves an investment by ID
func (h *RecordHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	investment, err := h.recordService.GetInvestmentByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, investment)
}

// UpdateInvestment updates an investment
func (h *RecordHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	var req financeapp.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investment, err := h.recordService.UpdateInvestment(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, investment)
}

// DeleteInvestment deletes an investment
func (h *RecordHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	if err := h.recordService.DeleteInvestment(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListInvestments lists investments with optional filters and pagination
func (h *RecordHandler) ListInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investments, total, err := h.recordService.ListInvestments(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, investments, total, page, pageSize)
}

// CreateCategory creates a new category
func (h *RecordHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.recordService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// GetCategory retrieves a category by ID
func (h *RecordHandler) GetCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.recordService.GetCategoryByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// UpdateCategory updates a category
func (h *RecordHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req financeapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.recordService.UpdateCategory(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// DeleteCategory deletes a category
func (h *RecordHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.recordService.DeleteCategory(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListCategories lists categories with optional search and pagination
func (h *RecordHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, total, err := h.recordService.ListCategories(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := h.listMeta(filter)
	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// RegisterRoutes registers all record routes
func (h *RecordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	incomes := rg.Group("/incomes")
	{
		incomes.GET("", h.ListIncomes)
		incomes.GET("/:id", h.GetIncome)
		incomes.POST("", h.CreateIncome)
		incomes.PUT("/:id", h.UpdateIncome)
		incomes.DELETE("/:id", h.DeleteIncome)
	}

	investments := rg.Group("/investments")
	{
		investments.GET("", h.ListInvestments)
		investments.GET("/:id", h.GetInvestment)
		investments.POST("", h.CreateInvestment)
		investments.PUT("/:id", h.UpdateInvestment)
		investments.DELETE("/:id", h.DeleteInvestment)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}
