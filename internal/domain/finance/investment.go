package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Investment represents money placed into an asset on a given date
type Investment struct {
	shared.OwnedAggregateRoot
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
}

// NewInvestment creates an investment record
func NewInvestment(userID uuid.UUID, description string, amount decimal.Decimal, date time.Time, investmentType string) (*Investment, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	return &Investment{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Description:        description,
		Amount:             amount,
		Date:               date,
		Type:               investmentType,
	}, nil
}

// Update replaces the investment's fields
func (v *Investment) Update(description string, amount decimal.Decimal, date time.Time, investmentType string) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	v.Description = description
	v.Amount = amount
	v.Date = date
	v.Type = investmentType
	v.UpdatedAt = time.Now()
	return nil
}
