package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/finance"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Budget, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Budget, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, budget *finance.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockBudgetRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockSavingsGoalRepository struct {
	mock.Mock
}

func (m *MockSavingsGoalRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.SavingsGoal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.SavingsGoal, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) Save(ctx context.Context, goal *finance.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time, categoryID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to, categoryID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestBudgetService_GetBudgetByID(t *testing.T) {
	userID := uuid.New()

	t.Run("evaluates spent against the current monthly window", func(t *testing.T) {
		budgetRepo := new(MockBudgetRepository)
		goalRepo := new(MockSavingsGoalRepository)
		expenseRepo := new(MockExpenseRepository)
		service := NewBudgetService(budgetRepo, goalRepo, expenseRepo)

		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		budget, err := finance.NewBudget(userID, "Food", decimal.NewFromInt(500), finance.BudgetPeriodMonthly, start, nil, nil)
		require.NoError(t, err)

		budgetRepo.On("FindByIDForUser", mock.Anything, userID, budget.ID).Return(budget, nil)
		expenseRepo.On("SumByDateRange", mock.Anything, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), (*uuid.UUID)(nil)).
			Return(decimal.NewFromFloat(123.45), nil)

		resp, err := service.GetBudgetByID(context.Background(), userID, budget.ID)

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Spent.Equal(decimal.NewFromFloat(123.45)))
		assert.True(t, resp.Remaining.Equal(decimal.NewFromFloat(376.55)))

		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		assert.Equal(t, firstOfMonth, resp.WindowFrom)
		assert.True(t, resp.WindowTo.After(resp.WindowFrom))
		budgetRepo.AssertExpectations(t)
		expenseRepo.AssertExpectations(t)
	})

	t.Run("passes the category restriction through", func(t *testing.T) {
		budgetRepo := new(MockBudgetRepository)
		goalRepo := new(MockSavingsGoalRepository)
		expenseRepo := new(MockExpenseRepository)
		service := NewBudgetService(budgetRepo, goalRepo, expenseRepo)

		categoryID := uuid.New()
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		budget, err := finance.NewBudget(userID, "Transport", decimal.NewFromInt(100), finance.BudgetPeriodMonthly, start, nil, &categoryID)
		require.NoError(t, err)

		budgetRepo.On("FindByIDForUser", mock.Anything, userID, budget.ID).Return(budget, nil)
		expenseRepo.On("SumByDateRange", mock.Anything, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), &categoryID).
			Return(decimal.Zero, nil)

		resp, err := service.GetBudgetByID(context.Background(), userID, budget.ID)

		assert.NoError(t, err)
		assert.True(t, resp.Spent.IsZero())
		assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(100)))
		expenseRepo.AssertExpectations(t)
	})
}

func TestBudgetService_SavingsGoals(t *testing.T) {
	userID := uuid.New()

	t.Run("reports a reached goal", func(t *testing.T) {
		budgetRepo := new(MockBudgetRepository)
		goalRepo := new(MockSavingsGoalRepository)
		expenseRepo := new(MockExpenseRepository)
		service := NewBudgetService(budgetRepo, goalRepo, expenseRepo)

		goalRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.SavingsGoal")).Return(nil)

		resp, err := service.CreateSavingsGoal(context.Background(), userID, SavingsGoalRequest{
			Name:          "Emergency fund",
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.NewFromInt(1000),
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsReached)
		goalRepo.AssertExpectations(t)
	})
}
