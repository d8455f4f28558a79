package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/organizer/backend/internal/application/finance"
)

// InstallmentHandler handles installment plan API endpoints
type InstallmentHandler struct {
	BaseHandler
	installmentService *financeapp.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *financeapp.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// Create creates a plan and its full amortization schedule
func (h *InstallmentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.installmentService.CreateInstallmentPlan(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// GetByID retrieves a plan with its payments
func (h *InstallmentHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.installmentService.GetInstallmentPlanByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Update updates a plan's descriptive fields. The schedule is immutable.
func (h *InstallmentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req financeapp.UpdateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.installmentService.UpdateInstallmentPlan(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// SetStatus manually overrides a plan's status
func (h *InstallmentHandler) SetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req financeapp.SetPlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.installmentService.SetInstallmentPlanStatus(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete deletes a plan that has no settled payments
func (h *InstallmentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	if err := h.installmentService.DeleteInstallmentPlan(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List lists plans with optional filters and pagination
func (h *InstallmentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.InstallmentPlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plans, total, err := h.installmentService.ListInstallmentPlans(c.Request.Context(), userID, filter)
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
	h.SuccessWithMeta(c, plans, total, page, pageSize)
}

// Settle marks a payment as paid and records the matching expense in one
// transaction. Settling the same payment twice yields a conflict.
func (h *InstallmentHandler) Settle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	paymentID, err := parseIDParam(c, "paymentId")
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	result, err := h.installmentService.SettlePayment(c.Request.Context(), userID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers all installment plan routes
func (h *InstallmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/installment-plans")
	{
		plans.GET("", h.List)
		plans.GET("/:id", h.GetByID)
		plans.POST("", h.Create)
		plans.PUT("/:id", h.Update)
		plans.PATCH("/:id/status", h.SetStatus)
		plans.DELETE("/:id", h.Delete)
	}

	payments := rg.Group("/installment-payments")
	{
		payments.POST("/:paymentId/settle", h.Settle)
	}
}
