package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustExpense(t *testing.T, userID uuid.UUID, amount int64, date time.Time, categoryID *uuid.UUID) *Expense {
	t.Helper()
	e, err := NewExpense(userID, "expense", decimal.NewFromInt(amount), date, categoryID)
	require.NoError(t, err)
	return e
}

func TestMonthlyWindowBoundaries(t *testing.T) {
	userID := uuid.New()
	budget, err := NewBudget(userID, "Groceries", decimal.NewFromInt(500), BudgetPeriodMonthly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	now := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	expenses := []*Expense{
		mustExpense(t, userID, 10, time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 20, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 30, time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 40, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil),
	}

	spent := budget.Spent(expenses, now)
	assert.True(t, spent.Equal(decimal.NewFromInt(50)), "got %s", spent)
}

func TestWeeklyWindowIsMondayToSunday(t *testing.T) {
	userID := uuid.New()
	budget, err := NewBudget(userID, "Eating out", decimal.NewFromInt(100), BudgetPeriodWeekly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	// Wednesday 2024-01-10; the ISO week runs Mon 01-08 through Sun 01-14
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	window := budget.CurrentWindow(now)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), window.From)
	assert.Equal(t, 14, window.To.Day())
	assert.Equal(t, time.Sunday, window.To.Weekday())

	expenses := []*Expense{
		mustExpense(t, userID, 5, time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 7, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 11, time.Date(2024, 1, 14, 22, 0, 0, 0, time.UTC), nil),
		mustExpense(t, userID, 13, time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC), nil),
	}
	spent := budget.Spent(expenses, now)
	assert.True(t, spent.Equal(decimal.NewFromInt(18)), "got %s", spent)
}

func TestWeeklyWindowOnSunday(t *testing.T) {
	budget, err := NewBudget(uuid.New(), "Weekly", decimal.NewFromInt(100), BudgetPeriodWeekly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	// Sunday still belongs to the week that started the previous Monday
	now := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	window := budget.CurrentWindow(now)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), window.From)
}

func TestYearlyWindow(t *testing.T) {
	budget, err := NewBudget(uuid.New(), "Annual", decimal.NewFromInt(10000), BudgetPeriodYearly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	window := budget.CurrentWindow(now)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), window.From)
	assert.True(t, window.Contains(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCustomWindowWithoutEndUsesNow(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	budget, err := NewBudget(uuid.New(), "Trip", decimal.NewFromInt(2000), BudgetPeriodCustom, start, nil, nil)
	require.NoError(t, err)

	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	window := budget.CurrentWindow(now)
	assert.Equal(t, start, window.From)
	assert.Equal(t, now, window.To)
}

func TestSpentRespectsCategoryFilter(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	otherCategory := uuid.New()
	budget, err := NewBudget(userID, "Food", decimal.NewFromInt(300), BudgetPeriodMonthly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, &categoryID)
	require.NoError(t, err)

	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	expenses := []*Expense{
		mustExpense(t, userID, 25, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), &categoryID),
		mustExpense(t, userID, 50, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), &otherCategory),
		mustExpense(t, userID, 75, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), nil),
	}
	spent := budget.Spent(expenses, now)
	assert.True(t, spent.Equal(decimal.NewFromInt(25)), "got %s", spent)
}

func TestSpentEmptyMatchIsZero(t *testing.T) {
	budget, err := NewBudget(uuid.New(), "Empty", decimal.NewFromInt(100), BudgetPeriodMonthly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)

	spent := budget.Spent(nil, time.Now())
	assert.True(t, spent.IsZero())
}

func TestNewBudgetValidation(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewBudget(userID, "", decimal.NewFromInt(100), BudgetPeriodMonthly, start, nil, nil)
	assert.Error(t, err)

	_, err = NewBudget(userID, "B", decimal.Zero, BudgetPeriodMonthly, start, nil, nil)
	assert.Error(t, err)

	_, err = NewBudget(userID, "B", decimal.NewFromInt(100), "quarterly", start, nil, nil)
	assert.Error(t, err)

	_, err = NewBudget(userID, "B", decimal.NewFromInt(100), BudgetPeriodCustom, time.Time{}, nil, nil)
	assert.Error(t, err)

	before := start.AddDate(0, 0, -1)
	_, err = NewBudget(userID, "B", decimal.NewFromInt(100), BudgetPeriodCustom, start, &before, nil)
	assert.Error(t, err)
}
