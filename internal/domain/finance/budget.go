package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the cadence a budget's window covers
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
	BudgetPeriodCustom  BudgetPeriod = "custom"
)

// IsValid checks if the period is a recognised value
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly, BudgetPeriodCustom:
		return true
	}
	return false
}

// Budget represents a spending limit over a recurring or custom window.
// Spent totals are derived at read time, never stored.
type Budget struct {
	shared.OwnedAggregateRoot
	Name        string          `json:"name"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      BudgetPeriod    `json:"period"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
}

// NewBudget creates a budget. Custom periods require an explicit start date.
func NewBudget(userID uuid.UUID, name string, limit decimal.Decimal, period BudgetPeriod, startDate time.Time, endDate *time.Time, categoryID *uuid.UUID) (*Budget, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Limit amount must be positive")
	}
	if !period.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is not valid")
	}
	if period == BudgetPeriodCustom && startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Custom period requires a start date")
	}
	if endDate != nil && !startDate.IsZero() && endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "End date must not be before start date")
	}
	return &Budget{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		LimitAmount:        limit,
		Period:             period,
		StartDate:          startDate,
		EndDate:            endDate,
		CategoryID:         categoryID,
	}, nil
}

// Update replaces the budget's fields
func (b *Budget) Update(name string, limit decimal.Decimal, period BudgetPeriod, startDate time.Time, endDate *time.Time, categoryID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if limit.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Limit amount must be positive")
	}
	if !period.IsValid() {
		return shared.NewDomainError("INVALID_PERIOD", "Period is not valid")
	}
	b.Name = name
	b.LimitAmount = limit
	b.Period = period
	b.StartDate = startDate
	b.EndDate = endDate
	b.CategoryID = categoryID
	b.UpdatedAt = time.Now()
	return nil
}

// PeriodWindow is the resolved date range a budget currently covers
type PeriodWindow struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window, inclusive on both ends
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// CurrentWindow resolves the budget's period to a concrete date range
// relative to now. Weekly windows run Monday through Sunday, monthly and
// yearly windows follow the calendar, and custom windows span the budget's
// own dates with a missing end date meaning "up to now".
func (b *Budget) CurrentWindow(now time.Time) PeriodWindow {
	switch b.Period {
	case BudgetPeriodWeekly:
		offset := int(now.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
		sunday := monday.AddDate(0, 0, 6)
		return PeriodWindow{From: monday, To: endOfDay(sunday)}
	case BudgetPeriodMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return PeriodWindow{From: first, To: endOfDay(last)}
	case BudgetPeriodYearly:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return PeriodWindow{From: first, To: endOfDay(last)}
	default:
		end := now
		if b.EndDate != nil {
			end = endOfDay(*b.EndDate)
		}
		return PeriodWindow{From: b.StartDate, To: end}
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Spent sums the expenses that fall inside the budget's current window and
// match its category filter, if one is set
func (b *Budget) Spent(expenses []*Expense, now time.Time) decimal.Decimal {
	window := b.CurrentWindow(now)
	total := decimal.Zero
	for _, e := range expenses {
		if !window.Contains(e.Date) {
			continue
		}
		if b.CategoryID != nil {
			if e.CategoryID == nil || *e.CategoryID != *b.CategoryID {
				continue
			}
		}
		total = total.Add(e.Amount)
	}
	return total
}
