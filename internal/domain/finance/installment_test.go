package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstallmentPlanSplit(t *testing.T) {
	userID := uuid.New()
	first := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	plan, err := NewInstallmentPlan(userID, "Laptop", decimal.NewFromInt(100), 3, 15, first, nil)
	require.NoError(t, err)
	require.Len(t, plan.Payments, 3)
	assert.Equal(t, PlanStatusActive, plan.Status)

	assert.True(t, plan.Payments[0].Amount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, plan.Payments[1].Amount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, plan.Payments[2].Amount.Equal(decimal.RequireFromString("33.34")))

	sum := decimal.Zero
	for _, p := range plan.Payments {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, sum.Equal(plan.TotalAmount))

	assert.Equal(t, first, plan.Payments[0].DueDate)
	assert.Equal(t, first.AddDate(0, 1, 0), plan.Payments[1].DueDate)
	assert.Equal(t, first.AddDate(0, 2, 0), plan.Payments[2].DueDate)
	for i, p := range plan.Payments {
		assert.Equal(t, i+1, p.PaymentNumber)
		assert.False(t, p.IsPaid)
	}
}

func TestNewInstallmentPlanClampsMonthEndDueDates(t *testing.T) {
	first := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	plan, err := NewInstallmentPlan(uuid.New(), "Sofa", decimal.NewFromInt(500), 5, 31, first, nil)
	require.NoError(t, err)
	require.Len(t, plan.Payments, 5)

	// Shorter months get their last day instead of rolling forward
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), plan.Payments[0].DueDate)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), plan.Payments[1].DueDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), plan.Payments[2].DueDate)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), plan.Payments[3].DueDate)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), plan.Payments[4].DueDate)
}

func TestNewInstallmentPlanClampsAcrossYearEnd(t *testing.T) {
	first := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	plan, err := NewInstallmentPlan(uuid.New(), "Bike", decimal.NewFromInt(300), 3, 31, first, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), plan.Payments[0].DueDate)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), plan.Payments[1].DueDate)
	// 2024 is a leap year
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), plan.Payments[2].DueDate)
}

func TestNewInstallmentPlanEvenSplit(t *testing.T) {
	plan, err := NewInstallmentPlan(uuid.New(), "Phone", decimal.NewFromInt(1200), 12, 1,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	for _, p := range plan.Payments {
		assert.True(t, p.Amount.Equal(decimal.NewFromInt(100)))
	}
}

func TestNewInstallmentPlanValidation(t *testing.T) {
	userID := uuid.New()
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewInstallmentPlan(userID, "", decimal.NewFromInt(100), 3, 1, first, nil)
	assert.Error(t, err)

	_, err = NewInstallmentPlan(userID, "TV", decimal.Zero, 3, 1, first, nil)
	assert.Error(t, err)

	_, err = NewInstallmentPlan(userID, "TV", decimal.NewFromInt(100), 0, 1, first, nil)
	assert.Error(t, err)

	_, err = NewInstallmentPlan(userID, "TV", decimal.NewFromInt(100), 3, 32, first, nil)
	assert.Error(t, err)

	_, err = NewInstallmentPlan(userID, "TV", decimal.NewFromInt(100), 3, 1, time.Time{}, nil)
	assert.Error(t, err)
}

func TestSettleOnce(t *testing.T) {
	plan, err := NewInstallmentPlan(uuid.New(), "Sofa", decimal.NewFromInt(300), 3, 5,
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	paymentID := plan.Payments[0].ID

	expense, err := plan.Settle(paymentID, now)
	require.NoError(t, err)
	require.NotNil(t, expense)
	assert.Equal(t, "Sofa (Cuota 1/3)", expense.Description)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, now, expense.Date)

	paid := plan.PaymentByID(paymentID)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidDate)
	require.NotNil(t, paid.ExpenseID)
	assert.Equal(t, expense.ID, *paid.ExpenseID)

	_, err = plan.Settle(paymentID, now)
	assert.ErrorIs(t, err, shared.ErrAlreadyPaid)
}

func TestSettleUnknownPayment(t *testing.T) {
	plan, err := NewInstallmentPlan(uuid.New(), "Sofa", decimal.NewFromInt(300), 3, 5,
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	_, err = plan.Settle(uuid.New(), time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAutoComplete(t *testing.T) {
	plan, err := NewInstallmentPlan(uuid.New(), "Bike", decimal.NewFromInt(90), 3, 1,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	now := time.Now()
	for i, payment := range plan.Payments {
		_, err := plan.Settle(payment.ID, now)
		require.NoError(t, err)
		if i < len(plan.Payments)-1 {
			assert.Equal(t, PlanStatusActive, plan.Status)
		}
	}
	assert.Equal(t, PlanStatusCompleted, plan.Status)
}

func TestSettleCarriesPlanCategory(t *testing.T) {
	categoryID := uuid.New()
	plan, err := NewInstallmentPlan(uuid.New(), "Fridge", decimal.NewFromInt(600), 6, 10,
		time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), &categoryID)
	require.NoError(t, err)

	expense, err := plan.Settle(plan.Payments[0].ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, expense.CategoryID)
	assert.Equal(t, categoryID, *expense.CategoryID)
}

func TestHasPaidPayments(t *testing.T) {
	plan, err := NewInstallmentPlan(uuid.New(), "Desk", decimal.NewFromInt(200), 2, 1,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	assert.False(t, plan.HasPaidPayments())

	_, err = plan.Settle(plan.Payments[0].ID, time.Now())
	require.NoError(t, err)
	assert.True(t, plan.HasPaidPayments())
}
