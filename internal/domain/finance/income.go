package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IncomeFrequency represents how often a recurring income repeats
type IncomeFrequency string

const (
	IncomeFrequencyWeekly  IncomeFrequency = "weekly"
	IncomeFrequencyMonthly IncomeFrequency = "monthly"
	IncomeFrequencyYearly  IncomeFrequency = "yearly"
)

// IsValid checks if the frequency is a recognised value
func (f IncomeFrequency) IsValid() bool {
	switch f {
	case IncomeFrequencyWeekly, IncomeFrequencyMonthly, IncomeFrequencyYearly:
		return true
	}
	return false
}

// Income represents money received on a given date
type Income struct {
	shared.OwnedAggregateRoot
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        time.Time        `json:"date"`
	IsRecurring bool             `json:"is_recurring"`
	Frequency   *IncomeFrequency `json:"frequency,omitempty"`
}

// NewIncome creates an income record. A recurring income requires a frequency.
func NewIncome(userID uuid.UUID, description string, amount decimal.Decimal, date time.Time, isRecurring bool, frequency *IncomeFrequency) (*Income, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if isRecurring {
		if frequency == nil || !frequency.IsValid() {
			return nil, shared.NewDomainError("INVALID_FREQUENCY", "Recurring income requires a valid frequency")
		}
	} else {
		frequency = nil
	}
	return &Income{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Description:        description,
		Amount:             amount,
		Date:               date,
		IsRecurring:        isRecurring,
		Frequency:          frequency,
	}, nil
}

// Update replaces the income's fields
func (i *Income) Update(description string, amount decimal.Decimal, date time.Time, isRecurring bool, frequency *IncomeFrequency) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if isRecurring {
		if frequency == nil || !frequency.IsValid() {
			return shared.NewDomainError("INVALID_FREQUENCY", "Recurring income requires a valid frequency")
		}
	} else {
		frequency = nil
	}
	i.Description = description
	i.Amount = amount
	i.Date = date
	i.IsRecurring = isRecurring
	i.Frequency = frequency
	i.UpdatedAt = time.Now()
	return nil
}
