package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	shared.OwnedRepository[Expense]
	// SumByDateRange totals the user's expenses dated within [from, to],
	// optionally restricted to one category
	SumByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time, categoryID *uuid.UUID) (decimal.Decimal, error)
}

// IncomeRepository defines persistence operations for incomes
type IncomeRepository interface {
	shared.OwnedRepository[Income]
}

// InvestmentRepository defines persistence operations for investments
type InvestmentRepository interface {
	shared.OwnedRepository[Investment]
}

// CategoryRepository defines persistence operations for finance categories
type CategoryRepository interface {
	shared.OwnedRepository[Category]
}

// SavingsGoalRepository defines persistence operations for savings goals
type SavingsGoalRepository interface {
	shared.OwnedRepository[SavingsGoal]
}

// BudgetRepository defines persistence operations for budgets
type BudgetRepository interface {
	shared.OwnedRepository[Budget]
}

// InstallmentPlanRepository defines persistence operations for installment
// plans and their payments
type InstallmentPlanRepository interface {
	shared.OwnedRepository[InstallmentPlan]
	// FindByPaymentID loads the plan containing the given payment
	FindByPaymentID(ctx context.Context, userID, paymentID uuid.UUID) (*InstallmentPlan, error)
	// Settle runs the full settlement in one transaction: the payment's
	// paid flag is flipped with a conditional update so concurrent attempts
	// on the same payment cannot both succeed, the expense is inserted, and
	// the plan status is updated when the schedule is complete. Returns the
	// settled plan and the created expense.
	Settle(ctx context.Context, userID, paymentID uuid.UUID, now time.Time) (*InstallmentPlan, *Expense, error)
}
