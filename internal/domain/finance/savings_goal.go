package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SavingsGoal represents a target amount to save towards
type SavingsGoal struct {
	shared.OwnedAggregateRoot
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Description   string          `json:"description"`
}

// NewSavingsGoal creates a savings goal starting at the given saved amount
func NewSavingsGoal(userID uuid.UUID, name string, target, current decimal.Decimal, deadline *time.Time, description string) (*SavingsGoal, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if target.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Target amount must be positive")
	}
	if current.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Current amount cannot be negative")
	}
	return &SavingsGoal{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		TargetAmount:       target,
		CurrentAmount:      current,
		Deadline:           deadline,
		Description:        description,
	}, nil
}

// Update replaces the goal's fields
func (g *SavingsGoal) Update(name string, target, current decimal.Decimal, deadline *time.Time, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if target.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Target amount must be positive")
	}
	if current.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Current amount cannot be negative")
	}
	g.Name = name
	g.TargetAmount = target
	g.CurrentAmount = current
	g.Deadline = deadline
	g.Description = description
	g.UpdatedAt = time.Now()
	return nil
}

// IsReached reports whether the saved amount covers the target
func (g *SavingsGoal) IsReached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}
