package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/organizer/backend/internal/application/finance"
)

// BudgetHandler handles budget and savings goal API endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *financeapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *financeapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudget creates a new budget
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, budget)
}

// GetBudget retrieves a budget evaluated over its current period window
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, budget)
}

// UpdateBudget updates a budget
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	var req financeapp.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, budget)
}

// DeleteBudget deletes a budget
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid budget ID")
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListBudgets lists budgets, each evaluated over its current window
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.BudgetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	budgets, total, err := h.budgetService.ListBudgets(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, budgets, total, page, pageSize)
}

// CreateSavingsGoal creates a new savings goal
func (h *BudgetHandler) CreateSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.budgetService.CreateSavingsGoal(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, goal)
}

// GetSavingsGoal retrieves a savings goal by ID
func (h *BudgetHandler) GetSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid savings goal ID")
		return
	}

	goal, err := h.budgetService.GetSavingsGoalByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// UpdateSavingsGoal updates a savings goal
func (h *BudgetHandler) UpdateSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid savings goal ID")
		return
	}

	var req financeapp.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goal, err := h.budgetService.UpdateSavingsGoal(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, goal)
}

// DeleteSavingsGoal deletes a savings goal
func (h *BudgetHandler) DeleteSavingsGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid savings goal ID")
		return
	}

	if err := h.budgetService.DeleteSavingsGoal(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListSavingsGoals lists savings goals with optional search and pagination
func (h *BudgetHandler) ListSavingsGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.SavingsGoalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	goals, total, err := h.budgetService.ListSavingsGoals(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, goals, total, page, pageSize)
}

// RegisterRoutes registers all budget and savings goal routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.ListBudgets)
		budgets.GET("/:id", h.GetBudget)
		budgets.POST("", h.CreateBudget)
		budgets.PUT("/:id", h.UpdateBudget)
		budgets.DELETE("/:id", h.DeleteBudget)
	}

	goals := rg.Group("/savings-goals")
	{
		goals.GET("", h.ListSavingsGoals)
		goals.GET("/:id", h.GetSavingsGoal)
		goals.POST("", h.CreateSavingsGoal)
		goals.PUT("/:id", h.UpdateSavingsGoal)
		goals.DELETE("/:id", h.DeleteSavingsGoal)
	}
}
