package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BudgetService provides application-level budget and savings goal
// operations
type BudgetService struct {
	budgetRepo  finance.BudgetRepository
	goalRepo    finance.SavingsGoalRepository
	expenseRepo finance.ExpenseRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo finance.BudgetRepository,
	goalRepo finance.SavingsGoalRepository,
	expenseRepo finance.ExpenseRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		goalRepo:    goalRepo,
		expenseRepo: expenseRepo,
	}
}

// ===================== Budgets =====================

// BudgetResponse represents a budget in API responses, evaluated against
// the current period window
type BudgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      string          `json:"period"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	WindowFrom  time.Time       `json:"window_from"`
	WindowTo    time.Time       `json:"window_to"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BudgetRequest represents a request to create or update a budget
type BudgetRequest struct {
	Name        string          `json:"name" binding:"required"`
	LimitAmount decimal.Decimal `json:"limit_amount" binding:"required"`
	Period      string          `json:"period" binding:"required"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// BudgetListFilter defines filtering options for budget list queries
type BudgetListFilter struct {
	Search     string     `form:"search"`
	Period     string     `form:"period"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// CreateBudget creates a new budget
func (s *BudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, req BudgetRequest) (*BudgetResponse, error) {
	budget, err := finance.NewBudget(userID, req.Name, req.LimitAmount, finance.BudgetPeriod(req.Period), req.StartDate, req.EndDate, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	return s.toBudgetResponse(ctx, budget, time.Now())
}

// GetBudgetByID gets a budget evaluated against its current window
func (s *BudgetService) GetBudgetByID(ctx context.Context, userID, id uuid.UUID) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.toBudgetResponse(ctx, budget, time.Now())
}

// UpdateBudget updates a budget
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, id uuid.UUID, req BudgetRequest) (*BudgetResponse, error) {
	budget, err := s.budgetRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := budget.Update(req.Name, req.LimitAmount, finance.BudgetPeriod(req.Period), req.StartDate, req.EndDate, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	return s.toBudgetResponse(ctx, budget, time.Now())
}

// DeleteBudget deletes a budget
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, id uuid.UUID) error {
	return s.budgetRepo.DeleteForUser(ctx, userID, id)
}

// ListBudgets lists budgets, each evaluated against its current window
func (s *BudgetService) ListBudgets(ctx context.Context, userID uuid.UUID, filter BudgetListFilter) ([]BudgetResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  map[string]interface{}{},
	}
	if filter.Period != "" {
		domainFilter.Filters["period"] = filter.Period
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	budgets, err := s.budgetRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.budgetRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		resp, err := s.toBudgetResponse(ctx, &budgets[i], now)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = *resp
	}
	return responses, total, nil
}

// toBudgetResponse evaluates the budget's current period window and sums
// the expenses that fall inside it
func (s *BudgetService) toBudgetResponse(ctx context.Context, b *finance.Budget, now time.Time) (*BudgetResponse, error) {
	window := b.CurrentWindow(now)
	spent, err := s.expenseRepo.SumByDateRange(ctx, b.UserID, window.From, window.To, b.CategoryID)
	if err != nil {
		return nil, err
	}
	return &BudgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		LimitAmount: b.LimitAmount,
		Period:      string(b.Period),
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		CategoryID:  b.CategoryID,
		Spent:       spent,
		Remaining:   b.LimitAmount.Sub(spent),
		WindowFrom:  window.From,
		WindowTo:    window.To,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}

// ===================== Savings Goals =====================

// SavingsGoalResponse represents a savings goal in API responses
type SavingsGoalResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Description   string          `json:"description,omitempty"`
	IsReached     bool            `json:"is_reached"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SavingsGoalRequest represents a request to create or update a savings goal
type SavingsGoalRequest struct {
	Name          string          `json:"name" binding:"required"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline"`
	Description   string          `json:"description"`
}

// SavingsGoalListFilter defines filtering options for goal list queries
type SavingsGoalListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateSavingsGoal creates a new savings goal
func (s *BudgetService) CreateSavingsGoal(ctx context.Context, userID uuid.UUID, req SavingsGoalRequest) (*SavingsGoalResponse, error) {
	goal, err := finance.NewSavingsGoal(userID, req.Name, req.TargetAmount, req.CurrentAmount, req.Deadline, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}
	return toSavingsGoalResponse(goal), nil
}

// GetSavingsGoalByID gets a savings goal by ID
func (s *BudgetService) GetSavingsGoalByID(ctx context.Context, userID, id uuid.UUID) (*SavingsGoalResponse, error) {
	goal, err := s.goalRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSavingsGoalResponse(goal), nil
}

// UpdateSavingsGoal updates a savings goal
func (s *BudgetService) UpdateSavingsGoal(ctx context.Context, userID, id uuid.UUID, req SavingsGoalRequest) (*SavingsGoalResponse, error) {
	goal, err := s.goalRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := goal.Update(req.Name, req.TargetAmount, req.CurrentAmount, req.Deadline, req.Description); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}
	return toSavingsGoalResponse(goal), nil
}

// DeleteSavingsGoal deletes a savings goal
func (s *BudgetService) DeleteSavingsGoal(ctx context.Context, userID, id uuid.UUID) error {
	return s.goalRepo.DeleteForUser(ctx, userID, id)
}

// ListSavingsGoals lists savings goals with filtering and pagination
func (s *BudgetService) ListSavingsGoals(ctx context.Context, userID uuid.UUID, filter SavingsGoalListFilter) ([]SavingsGoalResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	goals, err := s.goalRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.goalRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SavingsGoalResponse, len(goals))
	for i := range goals {
		responses[i] = *toSavingsGoalResponse(&goals[i])
	}
	return responses, total, nil
}

func toSavingsGoalResponse(g *finance.SavingsGoal) *SavingsGoalResponse {
	return &SavingsGoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		Description:   g.Description,
		IsReached:     g.IsReached(),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
