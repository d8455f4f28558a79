package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecordService provides application-level operations for the plain
// finance records: expenses, incomes, investments and their categories
type RecordService struct {
	expenseRepo    finance.ExpenseRepository
	incomeRepo     finance.IncomeRepository
	investmentRepo finance.InvestmentRepository
	categoryRepo   finance.CategoryRepository
}

// NewRecordService creates a new RecordService
func NewRecordService(
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	investmentRepo finance.InvestmentRepository,
	categoryRepo finance.CategoryRepository,
) *RecordService {
	return &RecordService{
		expenseRepo:    expenseRepo,
		incomeRepo:     incomeRepo,
		investmentRepo: investmentRepo,
		categoryRepo:   categoryRepo,
	}
}

// RecordListFilter defines the shared filtering options for finance
// record list queries
type RecordListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Type       string     `form:"type"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	Recurring  *bool      `form:"recurring"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

func (f RecordListFilter) toDomain() shared.Filter {
	domainFilter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
		Filters:  map[string]interface{}{},
	}
	if f.CategoryID != nil {
		domainFilter.Filters["category_id"] = *f.CategoryID
	}
	if f.Type != "" {
		domainFilter.Filters["type"] = f.Type
	}
	if f.From != nil {
		domainFilter.Filters["from"] = *f.From
	}
	if f.To != nil {
		domainFilter.Filters["to"] = *f.To
	}
	if f.Recurring != nil {
		domainFilter.Filters["is_recurring"] = *f.Recurring
	}
	return domainFilter
}

// ===================== Expenses =====================

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseRequest represents a request to create or update an expense
type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// CreateExpense creates a new expense
func (s *RecordService) CreateExpense(ctx context.Context, userID uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	if err := s.checkCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}
	expense, err := finance.NewExpense(userID, req.Description, req.Amount, req.Date, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpenseByID gets an expense by ID
func (s *RecordService) GetExpenseByID(ctx context.Context, userID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// UpdateExpense updates an expense
func (s *RecordService) UpdateExpense(ctx context.Context, userID, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, userID, req.CategoryID); err != nil {
		return nil, err
	}
	if err := expense.Update(req.Description, req.Amount, req.Date, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense deletes an expense
func (s *RecordService) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	return s.expenseRepo.DeleteForUser(ctx, userID, id)
}

// ListExpenses lists expenses with filtering and pagination
func (s *RecordService) ListExpenses(ctx context.Context, userID uuid.UUID, filter RecordListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := filter.toDomain()

	expenses, err := s.expenseRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *toExpenseResponse(&expenses[i])
	}
	return responses, total, nil
}

// ===================== Incomes =====================

// IncomeResponse represents an income in API responses
type IncomeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	IsRecurring bool            `json:"is_recurring"`
	Frequency   *string         `json:"frequency,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IncomeRequest represents a request to create or update an income
type IncomeRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	IsRecurring bool            `json:"is_recurring"`
	Frequency   *string         `json:"frequency"`
}

// CreateIncome creates a new income
func (s *RecordService) CreateIncome(ctx context.Context, userID uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	income, err := finance.NewIncome(userID, req.Description, req.Amount, req.Date, req.IsRecurring, toFrequency(req.Frequency))
	if err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}
	return toIncomeResponse(income), nil
}

// GetIncomeByID gets an income by ID
func (s *RecordService) GetIncomeByID(ctx context.Context, userID, id uuid.UUID) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toIncomeResponse(income), nil
}

// UpdateIncome updates an income
func (s *RecordService) UpdateIncome(ctx context.Context, userID, id uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	income, err := s.incomeRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := income.Update(req.Description, req.Amount, req.Date, req.IsRecurring, toFrequency(req.Frequency)); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}
	return toIncomeResponse(income), nil
}

// DeleteIncome deletes an income
func (s *RecordService) DeleteIncome(ctx context.Context, userID, id uuid.UUID) error {
	return s.incomeRepo.DeleteForUser(ctx, userID, id)
}

// ListIncomes lists incomes with filtering and pagination
func (s *RecordService) ListIncomes(ctx context.Context, userID uuid.UUID, filter RecordListFilter) ([]IncomeResponse, int64, error) {
	domainFilter := filter.toDomain()

	incomes, err := s.incomeRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.incomeRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		responses[i] = *toIncomeResponse(&incomes[i])
	}
	return responses, total, nil
}

// ===================== Investments =====================

// InvestmentResponse represents an investment in API responses
type InvestmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvestmentRequest represents a request to create or update an investment
type InvestmentRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Type        string          `json:"type"`
}

// CreateInvestment creates a new investment
func (s *RecordService) CreateInvestment(ctx context.Context, userID uuid.UUID, req InvestmentRequest) (*InvestmentResponse, error) {
	investment, err := finance.NewInvestment(userID, req.Description, req.Amount, req.Date, req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.investmentRepo.Save(ctx, investment); err != nil {
		return nil, err
	}
	return toInvestmentResponse(investment), nil
}

// GetInvestmentByID gets an investment by ID
func (s *RecordService) GetInvestmentByID(ctx context.Context, userID, id uuid.UUID) (*InvestmentResponse, error) {
	investment, err := s.investmentRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toInvestmentResponse(investment), nil
}

// UpdateInvestment updates an investment
func (s *RecordService) UpdateInvestment(ctx context.Context, userID, id uuid.UUID, req InvestmentRequest) (*InvestmentResponse, error) {
	investment, err := s.investmentRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := investment.Update(req.Description, req.Amount, req.Date, req.Type); err != nil {
		return nil, err
	}
	if err := s.investmentRepo.Save(ctx, investment); err != nil {
		return nil, err
	}
	return toInvestmentResponse(investment), nil
}

// DeleteInvestment deletes an investment
func (s *RecordService) DeleteInvestment(ctx context.Context, userID, id uuid.UUID) error {
	return s.investmentRepo.DeleteForUser(ctx, userID, id)
}

// ListInvestments lists investments with filtering and pagination
func (s *RecordService) ListInvestments(ctx context.Context, userID uuid.UUID, filter RecordListFilter) ([]InvestmentResponse, int64, error) {
	domainFilter := filter.toDomain()

	investments, err := s.investmentRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.investmentRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvestmentResponse, len(investments))
	for i := range investments {
		responses[i] = *toInvestmentResponse(&investments[i])
	}
	return responses, total, nil
}

// ===================== Categories =====================

// CategoryResponse represents a finance category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRequest represents a request to create or update a category
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CreateCategory creates a new category
func (s *RecordService) CreateCategory(ctx context.Context, userID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := finance.NewCategory(userID, req.Name, req.Color, req.Icon)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategoryByID gets a category by ID
func (s *RecordService) GetCategoryByID(ctx context.Context, userID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// UpdateCategory updates a category
func (s *RecordService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Color, req.Icon); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory deletes a category. Records pointing at it keep their
// category id; lookups simply stop resolving.
func (s *RecordService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return s.categoryRepo.DeleteForUser(ctx, userID, id)
}

// ListCategories lists categories with filtering and pagination
func (s *RecordService) ListCategories(ctx context.Context, userID uuid.UUID, filter RecordListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := filter.toDomain()

	categories, err := s.categoryRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *toCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// checkCategory verifies a referenced category exists and belongs to the user
func (s *RecordService) checkCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.FindByIDForUser(ctx, userID, *categoryID)
	return err
}

func toFrequency(f *string) *finance.IncomeFrequency {
	if f == nil {
		return nil
	}
	freq := finance.IncomeFrequency(*f)
	return &freq
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CategoryID:  e.CategoryID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toIncomeResponse(i *finance.Income) *IncomeResponse {
	var freq *string
	if i.Frequency != nil {
		f := string(*i.Frequency)
		freq = &f
	}
	return &IncomeResponse{
		ID:          i.ID,
		Description: i.Description,
		Amount:      i.Amount,
		Date:        i.Date,
		IsRecurring: i.IsRecurring,
		Frequency:   freq,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toInvestmentResponse(v *finance.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:          v.ID,
		Description: v.Description,
		Amount:      v.Amount,
		Date:        v.Date,
		Type:        v.Type,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toCategoryResponse(c *finance.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
