package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense represents a single spent amount on a given date
type Expense struct {
	shared.OwnedAggregateRoot
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
}

// NewExpense creates an expense record
func NewExpense(userID uuid.UUID, description string, amount decimal.Decimal, date time.Time, categoryID *uuid.UUID) (*Expense, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	return &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Description:        description,
		Amount:             amount,
		Date:               date,
		CategoryID:         categoryID,
	}, nil
}

// Update replaces the expense's fields
func (e *Expense) Update(description string, amount decimal.Decimal, date time.Time, categoryID *uuid.UUID) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	e.Description = description
	e.Amount = amount
	e.Date = date
	e.CategoryID = categoryID
	e.UpdatedAt = time.Now()
	return nil
}
