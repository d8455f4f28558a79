package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/organizer/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// InstallmentService provides application-level installment plan operations
type InstallmentService struct {
	planRepo finance.InstallmentPlanRepository
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(planRepo finance.InstallmentPlanRepository) *InstallmentService {
	return &InstallmentService{planRepo: planRepo}
}

// InstallmentPaymentResponse represents one scheduled payment in API responses
type InstallmentPaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaymentNumber int             `json:"payment_number"`
	IsPaid        bool            `json:"is_paid"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
}

// InstallmentPlanResponse represents an installment plan in API responses
type InstallmentPlanResponse struct {
	ID               uuid.UUID                    `json:"id"`
	Description      string                       `json:"description"`
	TotalAmount      decimal.Decimal              `json:"total_amount"`
	NumberOfPayments int                          `json:"number_of_payments"`
	DayOfMonth       int                          `json:"day_of_month"`
	FirstPaymentDate time.Time                    `json:"first_payment_date"`
	CategoryID       *uuid.UUID                   `json:"category_id,omitempty"`
	Status           string                       `json:"status"`
	Payments         []InstallmentPaymentResponse `json:"payments"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// SettleResponse pairs the settled plan with the expense the settlement
// produced
type SettleResponse struct {
	Plan    InstallmentPlanResponse `json:"plan"`
	Expense ExpenseResponse         `json:"expense"`
}

// CreateInstallmentPlanRequest represents a request to create a plan
type CreateInstallmentPlanRequest struct {
	Description      string          `json:"description" binding:"required"`
	TotalAmount      decimal.Decimal `json:"total_amount" binding:"required"`
	NumberOfPayments int             `json:"number_of_payments" binding:"required"`
	DayOfMonth       int             `json:"day_of_month" binding:"required"`
	FirstPaymentDate time.Time       `json:"first_payment_date" binding:"required"`
	CategoryID       *uuid.UUID      `json:"category_id"`
}

// UpdateInstallmentPlanRequest represents a request to update a plan's
// descriptive fields. The amortization schedule is immutable.
type UpdateInstallmentPlanRequest struct {
	Description string     `json:"description" binding:"required"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// SetPlanStatusRequest represents a manual status override
type SetPlanStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InstallmentPlanListFilter defines filtering options for plan list queries
type InstallmentPlanListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateInstallmentPlan creates a plan along with its full payment
// schedule, split so the per-payment amounts add up to the total exactly
func (s *InstallmentService) CreateInstallmentPlan(ctx context.Context, userID uuid.UUID, req CreateInstallmentPlanRequest) (*InstallmentPlanResponse, error) {
	plan, err := finance.NewInstallmentPlan(
		userID,
		req.Description,
		req.TotalAmount,
		req.NumberOfPayments,
		req.DayOfMonth,
		req.FirstPaymentDate,
		req.CategoryID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toInstallmentPlanResponse(plan), nil
}

// GetInstallmentPlanByID gets a plan with its schedule
func (s *InstallmentService) GetInstallmentPlanByID(ctx context.Context, userID, id uuid.UUID) (*InstallmentPlanResponse, error) {
	plan, err := s.planRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toInstallmentPlanResponse(plan), nil
}

// UpdateInstallmentPlan updates a plan's description and category
func (s *InstallmentService) UpdateInstallmentPlan(ctx context.Context, userID, id uuid.UUID, req UpdateInstallmentPlanRequest) (*InstallmentPlanResponse, error) {
	plan, err := s.planRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := plan.Update(req.Description, req.CategoryID); err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toInstallmentPlanResponse(plan), nil
}

// SetInstallmentPlanStatus manually overrides a plan's status, e.g. to
// cancel an active plan
func (s *InstallmentService) SetInstallmentPlanStatus(ctx context.Context, userID, id uuid.UUID, req SetPlanStatusRequest) (*InstallmentPlanResponse, error) {
	plan, err := s.planRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := plan.SetStatus(finance.PlanStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toInstallmentPlanResponse(plan), nil
}

// DeleteInstallmentPlan deletes a plan. Plans with settled payments are
// kept; their expenses reference the schedule.
func (s *InstallmentService) DeleteInstallmentPlan(ctx context.Context, userID, id uuid.UUID) error {
	plan, err := s.planRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	if plan.HasPaidPayments() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a plan with settled payments")
	}
	return s.planRepo.DeleteForUser(ctx, userID, id)
}

// ListInstallmentPlans lists plans with filtering and pagination
func (s *InstallmentService) ListInstallmentPlans(ctx context.Context, userID uuid.UUID, filter InstallmentPlanListFilter) ([]InstallmentPlanResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	plans, err := s.planRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.planRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InstallmentPlanResponse, len(plans))
	for i := range plans {
		responses[i] = *toInstallmentPlanResponse(&plans[i])
	}
	return responses, total, nil
}

// SettlePayment settles one scheduled payment: the matching expense is
// created, the payment is marked paid and the plan completes when it was
// the last one. The whole settlement happens atomically in the repository.
func (s *InstallmentService) SettlePayment(ctx context.Context, userID, paymentID uuid.UUID) (*SettleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "installment", "settle",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID),
		telemetry.WithAttribute(telemetry.SpanAttrPaymentID, paymentID),
	)
	defer span.End()

	plan, expense, err := s.planRepo.Settle(ctx, userID, paymentID, time.Now())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrPlanID, plan.ID)
	return &SettleResponse{
		Plan:    *toInstallmentPlanResponse(plan),
		Expense: *toExpenseResponse(expense),
	}, nil
}

func toInstallmentPlanResponse(p *finance.InstallmentPlan) *InstallmentPlanResponse {
	payments := make([]InstallmentPaymentResponse, len(p.Payments))
	for i, payment := range p.Payments {
		payments[i] = InstallmentPaymentResponse{
			ID:            payment.ID,
			Amount:        payment.Amount,
			DueDate:       payment.DueDate,
			PaymentNumber: payment.PaymentNumber,
			IsPaid:        payment.IsPaid,
			PaidDate:      payment.PaidDate,
			ExpenseID:     payment.ExpenseID,
		}
	}
	return &InstallmentPlanResponse{
		ID:               p.ID,
		Description:      p.Description,
		TotalAmount:      p.TotalAmount,
		NumberOfPayments: p.NumberOfPayments,
		DayOfMonth:       p.DayOfMonth,
		FirstPaymentDate: p.FirstPaymentDate,
		CategoryID:       p.CategoryID,
		Status:           string(p.Status),
		Payments:         payments,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
